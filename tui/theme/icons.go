package theme

// Status icons used by CLI output and the tour card.
const (
	IconSuccess   = "✓"
	IconError     = "✗"
	IconWarning   = "⚠"
	IconInfo      = "ℹ"
	IconArrow     = "→"
	IconArrowLeft = "←"
	IconBullet    = "•"
	IconFire      = "🔥"

	// Progress dots.
	IconDotFilled = "●"
	IconDotEmpty  = "○"
)
