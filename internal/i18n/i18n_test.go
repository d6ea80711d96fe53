package i18n

import (
	"context"
	"testing"

	"github.com/pmsadmin/console/internal/data"
	"github.com/pmsadmin/console/internal/domain/model"
	apperrors "github.com/pmsadmin/console/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	assert.Equal(t, "权限管理系统", Lookup("system", "title", LangZH))
	assert.Equal(t, "Permission Management System", Lookup("system", "title", LangEN))
	assert.Equal(t, "No agents", Lookup("agent", "noAgents", LangEN))
	assert.Equal(t, "missingKey", Lookup("system", "missingKey", LangEN))
	assert.Equal(t, "title", Lookup("nope", "title", LangZH))
}

func TestDictionary_Shape(t *testing.T) {
	d := Default()
	assert.Equal(t, []string{"agent", "business", "detail", "login", "message", "nav", "system"}, d.Sections())
	for section, entries := range d {
		for key, e := range entries {
			assert.NotEmpty(t, e.ZH, "%s.%s zh", section, key)
			assert.NotEmpty(t, e.EN, "%s.%s en", section, key)
		}
	}

	flat := d.Flatten(LangEN)
	assert.Equal(t, "Logout", flat["nav.logout"])
}

func TestParseLang(t *testing.T) {
	l, ok := ParseLang(" ZH ")
	assert.True(t, ok)
	assert.Equal(t, LangZH, l)
	_, ok = ParseLang("fr")
	assert.False(t, ok)
}

func TestPreference(t *testing.T) {
	ctx := context.Background()
	kv := data.NewMemoryKVRepo()
	p := NewPreference(kv)

	lang, err := p.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, LangEN, lang)

	lang, err = p.Set(ctx, "zh")
	require.NoError(t, err)
	assert.Equal(t, LangZH, lang)
	stored, _, _ := kv.Get(ctx, model.KeyLang)
	assert.Equal(t, "zh", stored)

	lang, err = p.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, LangZH, lang)

	_, err = p.Set(ctx, "de")
	assert.True(t, apperrors.IsValidation(err))

	require.NoError(t, kv.Set(ctx, model.KeyLang, "klingon"))
	lang, err = p.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultLang, lang)
}

func TestPreference_WithFallback(t *testing.T) {
	ctx := context.Background()
	kv := data.NewMemoryKVRepo()

	lang, err := NewPreference(kv).WithFallback(LangZH).Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, LangZH, lang)

	lang, err = NewPreference(kv).WithFallback("fr").Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultLang, lang)
}
