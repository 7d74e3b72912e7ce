package ctrl

import "fmt"

// Severity levels used by wpa_supplicant / hostapd event frames. The daemon
// prefixes each unsolicited message with "<N>" where N is the level.
const (
	SeverityMsgDump = 0
	SeverityDebug   = 1
	SeverityInfo    = 2
	SeverityWarning = 3
	SeverityError   = 4
)

// Event is an unsolicited control-interface message.
type Event struct {
	// Severity is the priority digit from the "<N>" frame prefix, 0-7.
	Severity int
	// Body is the keyword-tagged message text following the prefix,
	// e.g. "CTRL-EVENT-CONNECTED - Connection to 02:00:00:00:00:00 completed".
	Body string
}

// String renders the event in its wire form.
func (e Event) String() string {
	return fmt.Sprintf("<%d>%s", e.Severity, e.Body)
}

// Classify splits incoming frames into events and replies. A frame is an
// event iff it begins with a priority marker "<N>" for N in 0-7. Everything
// else, including empty or malformed frames, is treated as a reply so that
// corruption can never swallow a caller-visible reply.
func Classify(frame []byte) (Event, bool) {
	if len(frame) < 3 || frame[0] != '<' || frame[2] != '>' {
		return Event{}, false
	}
	digit := frame[1]
	if digit < '0' || digit > '7' {
		return Event{}, false
	}
	return Event{Severity: int(digit - '0'), Body: string(frame[3:])}, true
}
