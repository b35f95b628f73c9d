package orb_test

import (
	"testing"

	"github.com/Anonyfox/celestine-sub000/pkg/domain"
	"github.com/Anonyfox/celestine-sub000/pkg/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectiveOrb_BaseOnly(t *testing.T) {
	p := orb.DefaultPolicy()

	got, err := p.EffectiveOrb(domain.Square, domain.ClassStandard, domain.Mars, nil)
	require.NoError(t, err)
	assert.InDelta(t, 7, got, 1e-9)
}

func TestEffectiveOrb_Extensions(t *testing.T) {
	p := orb.DefaultPolicy()

	cases := []struct {
		name  string
		class domain.PointClass
		body  domain.Body
		want  float64
	}{
		{"luminary body", domain.ClassStandard, domain.Sun, 10},
		{"luminary point", domain.ClassLuminary, domain.Mars, 10},
		{"both luminary, added once", domain.ClassLuminary, domain.Moon, 10},
		{"angle point", domain.ClassAngle, domain.Mars, 9},
		{"outer body", domain.ClassStandard, domain.Pluto, 9},
		{"outer body on angle", domain.ClassAngle, domain.Saturn, 10},
		{"luminary on angle", domain.ClassAngle, domain.Sun, 11},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := p.EffectiveOrb(domain.Conjunction, tc.class, tc.body, nil)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestEffectiveOrb_OverrideReplacesBaseOnly(t *testing.T) {
	p := orb.DefaultPolicy()
	overrides := domain.OrbTable{domain.Trine: 4}

	// Override replaces the base term, extensions still apply.
	got, err := p.EffectiveOrb(domain.Trine, domain.ClassStandard, domain.Sun, overrides)
	require.NoError(t, err)
	assert.InDelta(t, 6, got, 1e-9)

	// Other aspects keep their defaults.
	got, err = p.EffectiveOrb(domain.Square, domain.ClassStandard, domain.Mars, overrides)
	require.NoError(t, err)
	assert.InDelta(t, 7, got, 1e-9)
}

func TestEffectiveOrb_ZeroDisables(t *testing.T) {
	p := orb.DefaultPolicy()
	overrides := domain.OrbTable{domain.Conjunction: 0}

	// Zero stays zero even for a luminary on an angle.
	got, err := p.EffectiveOrb(domain.Conjunction, domain.ClassAngle, domain.Sun, overrides)
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestEffectiveOrb_Rejections(t *testing.T) {
	p := orb.DefaultPolicy()

	_, err := p.EffectiveOrb("biquintile", domain.ClassStandard, domain.Mars, nil)
	assert.ErrorIs(t, err, domain.ErrUnknownAspect)

	_, err = p.EffectiveOrb(domain.Square, domain.ClassStandard, "vulcan", nil)
	assert.ErrorIs(t, err, domain.ErrUnknownBody)

	_, err = p.EffectiveOrb(domain.Square, domain.ClassStandard, domain.Mars, domain.OrbTable{domain.Square: -1})
	assert.ErrorIs(t, err, domain.ErrNegativeOrb)
}
