package memdom

// OpKind names a journaled mutation.
type OpKind string

const (
	OpCreateText    OpKind = "create_text"
	OpCreateElement OpKind = "create_element"
	OpSetText       OpKind = "set_text"
	OpInsert        OpKind = "insert"
	OpRemove        OpKind = "remove"
	OpSetAttr       OpKind = "set_attr"
	OpRemoveAttr    OpKind = "remove_attr"
	OpSetProp       OpKind = "set_prop"
	OpListen        OpKind = "listen"
	OpUnlisten      OpKind = "unlisten"
)

// Op is one journaled mutation. Node ids refer to Document.Node.
type Op struct {
	Kind   OpKind `json:"kind"`
	Node   int    `json:"node"`
	Parent int    `json:"parent,omitempty"`
	Before int    `json:"before,omitempty"`
	Name   string `json:"name,omitempty"`
	Value  string `json:"value,omitempty"`
}
