package effect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"forge/pkg/effect"
)

func TestDispelInfo_DispellableBy(t *testing.T) {
	tests := []struct {
		name string
		info effect.DispelInfo
		kind effect.DispelType
		want bool
	}{
		{
			name: "matching type removable",
			info: effect.DispelInfo{Types: []effect.DispelType{"curse"}, Removable: true},
			kind: "curse",
			want: true,
		},
		{
			name: "non-matching type",
			info: effect.DispelInfo{Types: []effect.DispelType{"curse"}, Removable: true},
			kind: "poison",
			want: false,
		},
		{
			name: "not removable at all",
			info: effect.DispelInfo{Types: []effect.DispelType{"curse"}, Removable: false},
			kind: "curse",
			want: false,
		},
		{
			name: "effect tagged DispelAll matches any kind",
			info: effect.DispelInfo{Types: []effect.DispelType{effect.DispelAll}, Removable: true},
			kind: "poison",
			want: true,
		},
		{
			name: "dispel action of kind DispelAll matches any removable effect",
			info: effect.DispelInfo{Types: []effect.DispelType{"curse"}, Removable: true},
			kind: effect.DispelAll,
			want: true,
		},
		{
			name: "DispelAll kind still denied when not removable",
			info: effect.DispelInfo{Types: []effect.DispelType{"curse"}, Removable: false},
			kind: effect.DispelAll,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.info.DispellableBy(tt.kind))
		})
	}
}
