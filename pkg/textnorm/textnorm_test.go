package textnorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amremberto/gecom-following-preload-sub002/pkg/textnorm"
)

func TestCode(t *testing.T) {
	assert.Equal(t, "ARS", textnorm.Code(" ars "))
	assert.Equal(t, "NC", textnorm.Code("nc"))
}

func TestFold(t *testing.T) {
	assert.Equal(t, "distribuidora alamo", textnorm.Fold("  Distribuidora  ÁLAMO "))
	assert.Equal(t, "nandu s.a.", textnorm.Fold("Ñandú S.A."))
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%alamo%", textnorm.LikePattern("alamo"))
	assert.Equal(t, `%50\%\_off%`, textnorm.LikePattern("50%_off"))
}
