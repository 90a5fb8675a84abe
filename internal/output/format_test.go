package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintStep(t *testing.T) {
	var buf bytes.Buffer
	PrintStep(&buf, 3, 7, "Archiving source tree")
	assert.Contains(t, buf.String(), "[3/7]")
	assert.Contains(t, buf.String(), "Archiving source tree...")
}

func TestPrintSuccess(t *testing.T) {
	var buf bytes.Buffer
	PrintSuccess(&buf, "Built cloud-init 0.7.2")
	assert.Contains(t, buf.String(), "Built cloud-init 0.7.2")
}

func TestPrintWarning(t *testing.T) {
	var buf bytes.Buffer
	PrintWarning(&buf, "no tag found for version 0.5.0")
	assert.Contains(t, buf.String(), "no tag found for version 0.5.0")
}

func TestPrintArtifact(t *testing.T) {
	var buf bytes.Buffer
	PrintArtifact(&buf, "dist/cloud-init-0.7.2-1.noarch.rpm")
	assert.Contains(t, buf.String(), "  ")
	assert.Contains(t, buf.String(), "cloud-init-0.7.2-1.noarch.rpm")
}
