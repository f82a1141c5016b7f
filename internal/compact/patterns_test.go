package compact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterLines_DropsSeparatorsAndProgress(t *testing.T) {
	lines := []string{
		"============",
		"----",
		"Downloading package 1 of 3",
		"45% |████████        |",
		"[2/5] building",
		"real output",
	}
	kept := FilterLines(lines, CategoryOther)
	assert.Equal(t, []string{"real output"}, kept)
}

func TestFilterLines_DropsLogLevelNoise(t *testing.T) {
	lines := []string{
		"WARN something minor",
		"INFO starting up",
		"DEBUG internals",
		"the actual result",
	}
	kept := FilterLines(lines, CategoryOther)
	assert.Equal(t, []string{"the actual result"}, kept)
}

func TestFilterLines_KeepsInfoForAlembic(t *testing.T) {
	lines := []string{
		"INFO  [alembic.runtime.migration] Running upgrade 1a2b -> 3c4d, add_users",
		"plain line",
	}

	kept := FilterLines(lines, CategoryAlembic)
	assert.Len(t, kept, 2)

	kept = FilterLines(lines, CategoryOther)
	assert.Equal(t, []string{"plain line"}, kept)
}

func TestFilterLines_GitSensitiveOnlyOutsideGit(t *testing.T) {
	lines := []string{"modified:   src/app.ts"}

	assert.Empty(t, FilterLines(lines, CategoryOther))
	assert.Equal(t, lines, FilterLines(lines, CategoryGit))
}

func TestFilterLines_CategorySpecific(t *testing.T) {
	tests := []struct {
		name     string
		category Category
		line     string
	}{
		{"docker header", CategoryDocker, "CONTAINER ID   IMAGE   STATUS"},
		{"compose attach", CategoryDockerCompose, "Attaching to web-1, db-1"},
		{"npm funding", CategoryNode, "  funding information available"},
		{"pytest collected", CategoryPython, "collected 52 items"},
		{"git branch line", CategoryGit, "On branch main"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, FilterLines([]string{tt.line}, tt.category))
		})
	}
}

func TestFilterLines_TimingNoise(t *testing.T) {
	lines := []string{
		"Done in 3.42s",
		"real\t0m1.250s",
		"payload",
	}
	kept := FilterLines(lines, CategoryOther)
	assert.Equal(t, []string{"payload"}, kept)
}

func TestFilterLines_PreservesOrder(t *testing.T) {
	lines := []string{"first", "WARN drop me", "second", "third"}
	assert.Equal(t, []string{"first", "second", "third"}, FilterLines(lines, CategoryOther))
}
