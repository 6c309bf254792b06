package readability_test

import (
	"testing"

	"github.com/fwojciec/sitechat"
	"github.com/fwojciec/sitechat/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract_ReturnsContent(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Release Notes</title></head>
<body>
<article>
<h1>Release Notes</h1>
<p>Version two ships with a faster parser, lower memory usage, and a new
configuration format that is backwards compatible with version one files.</p>
<p>Upgrading requires no code changes for most installations. Review the
deprecation list before enabling strict mode in production deployments.</p>
</article>
</body>
</html>`

	extractor := readability.NewExtractor()

	result, err := extractor.Extract(html)

	require.NoError(t, err)
	assert.Equal(t, "Release Notes", result.Title)
	assert.Contains(t, result.ContentHTML, "faster parser")
}

func TestExtractor_Extract_EmptyInput(t *testing.T) {
	t.Parallel()

	extractor := readability.NewExtractor()

	_, err := extractor.Extract("")

	require.Error(t, err)
	assert.Equal(t, sitechat.EINVALID, sitechat.ErrorCode(err))
}
