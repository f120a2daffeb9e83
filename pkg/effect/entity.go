package effect

import (
	"forge/pkg/attribute"
	"forge/pkg/tags"
)

// Entity is the external collaborator the effects engine runs against
// (spec §3). It owns one AttributeSet, one EffectsManager, and a tag
// container whose combined view is base tags union modifier tags granted
// by currently-installed effects.
type Entity interface {
	// ID returns a stable identifier, used only for logging and cues.
	ID() string

	// AttributeSet returns the entity's attribute bag. It may be nil for an
	// entity with no attributes; the engine then skips every modifier and
	// capture that would read from it.
	AttributeSet() *attribute.Set

	// ModifierTags returns the mutable tag set the engine grants tags
	// into and revokes them from as ModifierTags components of installed
	// effects are applied and removed.
	ModifierTags() *tags.Set

	// CombinedTags returns the union of the entity's own base tags and
	// its current ModifierTags, used for tag-requirement evaluation.
	CombinedTags() tags.Container

	// Manager returns the entity's EffectsManager.
	Manager() *Manager
}

// BasicEntity is a minimal, independently-usable reference Entity
// implementation for hosts that have no richer entity type of their own,
// and for tests.
type BasicEntity struct {
	id       string
	attrs    *attribute.Set
	baseTags *tags.Set
	modTags  *tags.Set
	manager  *Manager
}

// NewBasicEntity creates a BasicEntity with the given id, attribute set and
// base tags (an empty set when nil), backed by a new EffectsManager
// configured by opts.
func NewBasicEntity(id string, attrs *attribute.Set, baseTags *tags.Set, opts ...ManagerOption) *BasicEntity {
	if baseTags == nil {
		baseTags = tags.NewSet()
	}
	e := &BasicEntity{
		id:       id,
		attrs:    attrs,
		baseTags: baseTags,
		modTags:  tags.NewSet(),
	}
	e.manager = NewManager(e, opts...)
	return e
}

func (e *BasicEntity) ID() string                      { return e.id }
func (e *BasicEntity) AttributeSet() *attribute.Set     { return e.attrs }
func (e *BasicEntity) ModifierTags() *tags.Set          { return e.modTags }
func (e *BasicEntity) Manager() *Manager                { return e.manager }
func (e *BasicEntity) CombinedTags() tags.Container {
	return tags.Union(e.baseTags, e.modTags)
}

// BaseTags returns the entity's mutable base tag set (tags the entity has
// independent of any installed effect).
func (e *BasicEntity) BaseTags() *tags.Set { return e.baseTags }
