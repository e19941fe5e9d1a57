package format

// Signal is a backend-assigned recommendation category.
type Signal string

const (
	SignalStrongBuy  Signal = "STRONG_BUY"
	SignalBuy        Signal = "BUY"
	SignalHold       Signal = "HOLD"
	SignalSell       Signal = "SELL"
	SignalStrongSell Signal = "STRONG_SELL"
)

// SignalAttrs bundles the display attributes for one signal category.
type SignalAttrs struct {
	Label string
	Color string // lipgloss-compatible hex color
	Emoji string
}

var signalTable = map[Signal]SignalAttrs{
	SignalStrongBuy:  {Label: "Strong Buy", Color: "#10B981", Emoji: "🚀"},
	SignalBuy:        {Label: "Buy", Color: "#34D399", Emoji: "🟢"},
	SignalHold:       {Label: "Hold", Color: "#F59E0B", Emoji: "🟡"},
	SignalSell:       {Label: "Sell", Color: "#F87171", Emoji: "🔴"},
	SignalStrongSell: {Label: "Strong Sell", Color: "#EF4444", Emoji: "⛔"},
}

var unknownSignal = SignalAttrs{Label: "Unknown", Color: "#6B7280", Emoji: "❔"}

// AttrsFor returns the display attributes for a signal, falling back to a
// neutral gray entry for values the table does not recognize.
func AttrsFor(s Signal) SignalAttrs {
	if attrs, ok := signalTable[s]; ok {
		return attrs
	}
	return unknownSignal
}

// KnownSignals lists the recognized categories in strongest-buy-first order.
func KnownSignals() []Signal {
	return []Signal{SignalStrongBuy, SignalBuy, SignalHold, SignalSell, SignalStrongSell}
}
