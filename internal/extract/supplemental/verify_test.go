package supplemental

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jaimade/watch-docs/internal/model"
)

func TestVerifyJSFindsEntityRegexMissed(t *testing.T) {
	src := []byte(`
class Greeter {
	greet() {
		return "hi";
	}
}
`)
	missing := VerifyJS(model.LanguageJavaScript, src, nil)
	assert.Contains(t, missing, "Greeter")
	assert.Contains(t, missing, "greet")
}

func TestVerifyJSNoMissingWhenAlreadyKnown(t *testing.T) {
	src := []byte(`
function helper() {
	return 1;
}
`)
	known := []model.CodeEntity{{Name: "helper", Kind: model.EntityFunction}}
	missing := VerifyJS(model.LanguageJavaScript, src, known)
	assert.Empty(t, missing)
}

func TestVerifyJSUnsupportedLanguage(t *testing.T) {
	missing := VerifyJS(model.LanguagePython, []byte("def f(): pass"), nil)
	assert.Nil(t, missing)
}

func TestVerifyTypeScript(t *testing.T) {
	src := []byte(`
class Widget {
	describe(): string {
		return "widget";
	}
}
`)
	missing := VerifyJS(model.LanguageTypeScript, src, nil)
	assert.Contains(t, missing, "Widget")
	assert.Contains(t, missing, "describe")
}
