package datastructure

// TagValue is an osm-style attribute that arrives either as a single label or as a list of labels.
// Only ScalarTag and ListTag implement it. A nil TagValue means the attribute is absent.
type TagValue interface {
	// First returns the authoritative label: the scalar itself or the first list element.
	First() (string, bool)
	isTagValue()
}

type ScalarTag string

func (s ScalarTag) First() (string, bool) {
	if s == "" {
		return "", false
	}
	return string(s), true
}

func (ScalarTag) isTagValue() {}

type ListTag []string

func (l ListTag) First() (string, bool) {
	if len(l) == 0 || l[0] == "" {
		return "", false
	}
	return l[0], true
}

func (ListTag) isTagValue() {}

// NormalizeTag collapses a TagValue into the single label stored on the edge.
func NormalizeTag(t TagValue) string {
	if t == nil {
		return ""
	}
	v, _ := t.First()
	return v
}
