package jsondelta

// Policy overrides type-based opcode selection at a specific location in a
// document tree. A nil *Policy (or the absence of a matching sub-policy)
// means "choose by runtime type".
type Policy struct {
	// OType forces the opcode choice at the current node, overriding
	// type-based dispatch. One of "replace", "list", "list_dmp", "integer",
	// "string", or "" (unset).
	OType string `json:"otype,omitempty"`
	// Attributes maps field name to sub-policy, used when descending into
	// an Object value.
	Attributes map[string]*Policy `json:"attributes,omitempty"`
	// Item is the sub-policy applied uniformly to each element of a List.
	Item *Policy `json:"item,omitempty"`
}

// Attr resolves the sub-policy for an object field. It returns nil if p is
// nil or carries no override for key, meaning the field's opcode should be
// chosen by runtime type.
func (p *Policy) Attr(key string) *Policy {
	if p == nil || p.Attributes == nil {
		return nil
	}
	return p.Attributes[key]
}

// ElemPolicy resolves the sub-policy applied to every element of a list.
// It returns nil if p is nil or carries no item policy.
func (p *Policy) ElemPolicy() *Policy {
	if p == nil {
		return nil
	}
	return p.Item
}

// otype returns the configured OType, or "" if p is nil.
func (p *Policy) otype() string {
	if p == nil {
		return ""
	}
	return p.OType
}
