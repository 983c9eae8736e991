package mapevent

// EventType identifies a kind of engine event.
type EventType uint8

const (
	EventTransfer     EventType = iota // a cross-page jump or call succeeded
	EventLabelMissing                  // a cross-page label could not be resolved
	EventChildMoved                    // a child followed its parent's motion
	EventNameTagShown                  // an overlay became visible or changed text
	EventNameTagHidden                 // an overlay stopped being visible
)

func (t EventType) String() string {
	switch t {
	case EventTransfer:
		return "transfer"
	case EventLabelMissing:
		return "label-missing"
	case EventChildMoved:
		return "child-moved"
	case EventNameTagShown:
		return "nametag-shown"
	case EventNameTagHidden:
		return "nametag-hidden"
	}
	return "unknown"
}

// Event carries engine activity to an optional observer, such as an ECS
// bridge. Fields not relevant to Type are zero.
type Event struct {
	Type     EventType
	EntityID int

	// Transfer fields
	Label string
	Page  int // 1-based page the label resolved on, 0 when unknown
	Mode  TransferMode

	// Motion fields
	ParentID int
	DX, DY   int

	// Name tag fields
	Text     string
	StyleKey string
}

// EventSink receives engine events. Set one on the Engine with SetEventSink.
type EventSink interface {
	EmitEvent(event Event)
}

func emit(sink EventSink, ev Event) {
	if sink != nil {
		sink.EmitEvent(ev)
	}
}
