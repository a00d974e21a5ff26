package models

// Packet is one protocol message's mined schema.
type Packet struct {
	// State is the protocol state section the packet was found under.
	State string `json:"state,omitempty"`
	// Direction is the bound-to section name (e.g. Clientbound).
	Direction string `json:"direction,omitempty"`
	// Name is the packet's section heading.
	Name string `json:"name"`
	// Preamble is the prose preceding the packet's table.
	Preamble string `json:"preamble,omitempty"`
	// Protocol is the packet's protocol identifier (e.g. "0x2D").
	Protocol string `json:"protocol"`
	// Resource is the packet's resource identifier, when present.
	Resource string `json:"resource,omitempty"`
	// Fields is the packet's root field list in table row order.
	Fields []Field `json:"fields"`
}

// DirectionGroup holds the packets of one bound-to subsection.
type DirectionGroup struct {
	// Name is the direction label.
	Name string `json:"name"`
	// Packets are the direction's packets in section order.
	Packets []Packet `json:"packets"`
}

// StateGroup holds the directions of one protocol state section.
type StateGroup struct {
	// Name is the protocol state name.
	Name string `json:"name"`
	// Directions are the state's direction groups in section order.
	Directions []DirectionGroup `json:"directions"`
}

// Result is the batch output of mining one protocol page.
type Result struct {
	// States are the mined protocol state groups in page order.
	States []StateGroup `json:"states"`
}

// Packets returns every mined packet flattened in traversal order.
func (r *Result) Packets() []Packet {
	var out []Packet
	for _, s := range r.States {
		for _, d := range s.Directions {
			out = append(out, d.Packets...)
		}
	}
	return out
}
