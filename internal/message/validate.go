package message

// Field constraints per spec.md §3. Character classes are checked byte by
// byte rather than through regexp: the alphabet is small and fixed, and no
// example repo in the pack reaches for a regexp-based validator for this
// kind of fixed-charset field check.

const (
	maxUsernameLen    = 20
	maxChannelIDLen   = 20
	maxSecretLen      = 128
	maxDisplayNameLen = 20
	maxContentLen     = 1400
)

func isUsernameChar(b byte) bool {
	return isAlnum(b) || b == '-'
}

func isChannelIDChar(b byte) bool {
	return isAlnum(b) || b == '-' || b == '.'
}

func isAlnum(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}

func isDisplayNameChar(b byte) bool {
	return b >= 0x21 && b <= 0x7E
}

func isContentChar(b byte) bool {
	return b >= 0x20 && b <= 0x7E
}

func validCharset(s string, minLen, maxLen int, class func(byte) bool) bool {
	if len(s) < minLen || len(s) > maxLen {
		return false
	}

	for i := 0; i < len(s); i++ {
		if !class(s[i]) {
			return false
		}
	}

	return true
}

// ValidateUsername checks the AUTH Username field.
func ValidateUsername(s string) error {
	if !validCharset(s, 1, maxUsernameLen, isUsernameChar) {
		return ErrUsernameInvalid.Error()
	}

	return nil
}

// ValidateChannelID checks the JOIN ChannelID field.
func ValidateChannelID(s string) error {
	if !validCharset(s, 1, maxChannelIDLen, isChannelIDChar) {
		return ErrChannelIDInvalid.Error()
	}

	return nil
}

// ValidateSecret checks the AUTH Secret field.
func ValidateSecret(s string) error {
	if !validCharset(s, 1, maxSecretLen, isUsernameChar) {
		return ErrSecretInvalid.Error()
	}

	return nil
}

// ValidateDisplayName checks the DisplayName field shared by AUTH, JOIN, MSG
// and ERR.
func ValidateDisplayName(s string) error {
	if !validCharset(s, 1, maxDisplayNameLen, isDisplayNameChar) {
		return ErrDisplayNameInvalid.Error()
	}

	return nil
}

// ValidateMessageContent checks the MessageContent field shared by MSG, ERR
// and REPLY.
func ValidateMessageContent(s string) error {
	if !validCharset(s, 1, maxContentLen, isContentChar) {
		return ErrMessageContentInvalid.Error()
	}

	return nil
}
