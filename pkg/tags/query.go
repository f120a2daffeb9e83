package tags

// ExpressionType selects the matching rule a Query applies against a
// Container, per spec §6's query language.
type ExpressionType int

const (
	// AllExpressionsMatch requires every tag in the query to be present.
	AllExpressionsMatch ExpressionType = iota
	// AnyTagsMatch requires at least one tag in the query to be present.
	AnyTagsMatch
	// NoExpressionsMatch requires none of the tags in the query to be
	// present.
	NoExpressionsMatch
	// AllTagsMatch is an alias for AllExpressionsMatch kept distinct so
	// callers can express "all tags, not all sub-expressions" intent; both
	// evaluate identically against a flat tag list.
	AllTagsMatch
)

// Query evaluates a fixed set of tags against a Container using the rule
// named by Type.
type Query struct {
	Type ExpressionType
	Tags []Tag
}

// NewQuery builds a Query of the given type over the given tags.
func NewQuery(t ExpressionType, tags ...Tag) Query {
	return Query{Type: t, Tags: tags}
}

// Matches evaluates the query against c.
func (q Query) Matches(c Container) bool {
	switch q.Type {
	case AllExpressionsMatch, AllTagsMatch:
		for _, t := range q.Tags {
			if !c.Has(t) {
				return false
			}
		}
		return true
	case AnyTagsMatch:
		if len(q.Tags) == 0 {
			return true
		}
		for _, t := range q.Tags {
			if c.Has(t) {
				return true
			}
		}
		return false
	case NoExpressionsMatch:
		for _, t := range q.Tags {
			if c.Has(t) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Requirement is the (required, ignored, query) triple spec §4.7 names for
// TargetTagRequirements: satisfied when every required tag is present,
// none of the ignored tags are present, and the query matches.
type Requirement struct {
	Required Container
	Ignored  Container
	Query    Query
}

// Satisfied evaluates the requirement against combined, the union of an
// entity's base and modifier-granted tags.
func (r Requirement) Satisfied(combined Container) bool {
	if r.Required != nil && !IsSubsetOf(r.Required, combined) {
		return false
	}
	if r.Ignored != nil {
		for _, t := range r.Ignored.Tags() {
			if combined.Has(t) {
				return false
			}
		}
	}
	return r.Query.Matches(combined)
}
