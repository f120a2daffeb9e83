package effect_test

import (
	"forge/pkg/attribute"
	"forge/pkg/effect"
	"forge/pkg/tags"
)

const testChannelCount = 4

var tagSilenced = tags.New("status.silenced")

var effectOngoingRequirement = tags.Requirement{
	Query: tags.NewQuery(tags.NoExpressionsMatch, tagSilenced),
}

func newTestEntity(id string, opts ...effect.ManagerOption) *effect.BasicEntity {
	attrs := attribute.NewSet(id, testChannelCount)
	attrs.Register("Health", -9999, 9999, 100)
	attrs.Register("Mana", 0, 9999, 50)
	return effect.NewBasicEntity(id, attrs, tags.NewSet(), opts...)
}

func healthOf(e *effect.BasicEntity) int {
	a, ok := e.AttributeSet().Get("Health")
	if !ok {
		return 0
	}
	return a.CurrentValue()
}
