package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/smartmate/internal/core/domain"
)

func TestQueryKey(t *testing.T) {
	k := domain.Key("tasks", "completed=true")

	assert.Equal(t, "tasks/completed=true", k.String())
	assert.True(t, k.HasPrefix(domain.Key("tasks")))
	assert.True(t, k.HasPrefix(domain.Key()))
	assert.False(t, k.HasPrefix(domain.Key("users")))
	assert.False(t, domain.Key("tasks").HasPrefix(k))
}

func TestTheme(t *testing.T) {
	th, err := domain.ParseTheme("DARK")
	assert.NoError(t, err)
	assert.Equal(t, domain.ThemeDark, th)

	_, err = domain.ParseTheme("sepia")
	assert.ErrorIs(t, err, domain.ErrInvalidTheme)

	assert.Equal(t, domain.ThemeLight, domain.ThemeDark.Toggle())
	assert.Equal(t, domain.ThemeDark, domain.ThemeLight.Toggle())
	assert.Equal(t, domain.ThemeDark, domain.ThemeSystem.Toggle())
	assert.Equal(t, domain.ThemeLight, domain.ThemeSystem.Resolve(false))
	assert.Equal(t, domain.ThemeLight, domain.ThemeLight.Resolve(true))
}
