package lexicon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Compiles(t *testing.T) {
	lx, err := Load("")
	require.NoError(t, err)
	assert.NotEmpty(t, lx.SmallTalk)
}

func TestSmallTalkReply(t *testing.T) {
	lx := MustDefault()
	tests := []struct {
		in    string
		match bool
	}{
		{"hola", true},
		{"¡hola!", true},
		{"buenas tardes", true},
		{"muchas gracias", true},
		{"¿quien eres?", true},
		{"que puedes hacer", true},
		{"hola, necesito el formulario", false},
		{"holanda", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, ok := lx.SmallTalkReply(tt.in)
			assert.Equal(t, tt.match, ok)
		})
	}
}

func TestIsConfirmation(t *testing.T) {
	lx := MustDefault()
	assert.True(t, lx.IsConfirmation("¿este es el paso 3?"))
	assert.True(t, lx.IsConfirmation("esto es la seccion"))
	assert.True(t, lx.IsConfirmation("eso es el paso"))
	assert.False(t, lx.IsConfirmation("como llego al paso 3"))
}

func TestStrongEmotion(t *testing.T) {
	lx := MustDefault()
	assert.True(t, lx.StrongEmotion("enojado", 0.8))
	assert.True(t, lx.StrongEmotion("triste", 0.65))
	assert.False(t, lx.StrongEmotion("triste", 0.6))
	assert.True(t, lx.StrongEmotion("sorprendido", 0.7))
	assert.False(t, lx.StrongEmotion("positivo", 0.69))
	assert.False(t, lx.StrongEmotion("neutral", 1))
}

func TestRephrase(t *testing.T) {
	lx := MustDefault()
	assert.Equal(t, "Pero, el sistema guarda el cambio y después lo envía.",
		lx.Rephrase("No obstante, el sistema guarda el cambio y posteriormente lo envía."))
	assert.Equal(t, "revisa para validar", lx.Rephrase("revisa a fin de validar"))
}

func TestRephrase_WholeWordsOnly(t *testing.T) {
	lx := MustDefault()
	tests := []struct {
		in, want string
	}{
		{"El área efectuará la revisión y luego efectuarán el envío.", "El área efectuará la revisión y luego efectuarán el envío."},
		{"Debe efectuar el pago mediante transferencia.", "Debe hacer el pago con transferencia."},
		{"Mediante mediante", "Con con"},
		{"Asimismo, posteriormente.", "También, después."},
		{"efectuar", "hacer"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, lx.Rephrase(tt.in), tt.in)
	}
}

func TestTemplates_DefaultsToNeutral(t *testing.T) {
	lx := MustDefault()
	assert.Equal(t, lx.FallbackTemplates["neutral"], lx.Templates("desconocido"))
	assert.Equal(t, lx.FallbackTemplates["enojado"], lx.Templates("enojado"))
}

func TestEmpathyPrefix(t *testing.T) {
	lx := MustDefault()
	assert.Empty(t, lx.EmpathyPrefix("neutral"))
	assert.NotEmpty(t, lx.EmpathyPrefix("enojado"))
}

func TestLoad_Override(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	data := []byte(`
small_talk:
  - pattern: '^hello$'
    reply: 'Hi!'
domain_hints: ["invoice"]
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	lx, err := Load(path)
	require.NoError(t, err)
	reply, ok := lx.SmallTalkReply("hello")
	assert.True(t, ok)
	assert.Equal(t, "Hi!", reply)
	_, ok = lx.SmallTalkReply("hola")
	assert.False(t, ok)
	assert.True(t, lx.HasDomainHint("my invoice"))
	assert.NotEmpty(t, lx.Templates("neutral"), "untouched fields keep defaults")
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("small_talk:\n  - pattern: '('\n"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}
