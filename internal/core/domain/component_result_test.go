package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/graphcache/internal/core/domain"
)

func TestDetach(t *testing.T) {
	t.Parallel()

	repo := "mavenCentral"
	mv := domain.NewModuleVersionIdentifier("com.x", "lib", "1.0")
	original := domain.DetachedComponentResult{
		ID:         42,
		Module:     mv,
		Reason:     domain.Requested(),
		Component:  domain.ModuleComponentFor(mv),
		Variant:    "apiElements",
		Attributes: domain.EmptyAttributes().With("org.gradle.usage", "java-api"),
		Repository: &repo,
	}

	detached := domain.Detach(original)
	assert.Equal(t, original, detached)
	assert.NotSame(t, original.Repository, detached.Repository)

	got, ok := detached.RepositoryID()
	assert.True(t, ok)
	assert.Equal(t, repo, got)
	assert.Equal(t, "apiElements", detached.VariantName().DisplayName())

	detached.Repository = nil
	_, ok = detached.RepositoryID()
	assert.False(t, ok)
}
