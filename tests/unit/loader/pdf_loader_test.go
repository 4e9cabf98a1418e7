package loader_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"claimdesk/internal/loader"
)

func TestPDFLoader_LoadPages_RejectsGarbage(t *testing.T) {
	l := loader.NewPDFLoader()

	pages, err := l.LoadPages("doc_1.pdf", []byte("this is not a pdf at all"))

	assert.Nil(t, pages)
	assert.Error(t, err)
}

func TestPDFLoader_LoadPages_RejectsEmpty(t *testing.T) {
	l := loader.NewPDFLoader()

	pages, err := l.LoadPages("doc_1.pdf", nil)

	assert.Nil(t, pages)
	assert.Error(t, err)
}
