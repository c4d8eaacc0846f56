package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRead_TextVerbatim(t *testing.T) {
	path := writeFile(t, "brief.txt", "\n  Aplikasi kasir untuk 3 cabang.\nLaporan harian.  \n")

	in, err := Read(path)

	require.NoError(t, err)
	assert.Equal(t, FormatText, in.Format)
	assert.Equal(t, "Aplikasi kasir untuk 3 cabang.\nLaporan harian.", in.Text)
	assert.Equal(t, "brief.txt", in.Name)
}

func TestRead_MarkdownTakesTitle(t *testing.T) {
	path := writeFile(t, "rfp.md", "# Sistem Absensi\n\n- Login karyawan\n- Rekap bulanan\n")

	in, err := Read(path)

	require.NoError(t, err)
	assert.Equal(t, FormatMarkdown, in.Format)
	assert.Equal(t, "Sistem Absensi", in.Name)
	assert.Contains(t, in.Text, "- Rekap bulanan")
}

func TestRead_HTMLConvertedToMarkdown(t *testing.T) {
	page := `<html><head><title> RFP Portal Desa </title><style>body{color:red}</style></head>
<body>
<nav><a href="/">Home</a></nav>
<h1>Kebutuhan</h1>
<p>Portal informasi <strong>desa</strong> dengan layanan surat online.</p>
<ul><li>Pengajuan surat</li><li>Berita desa</li></ul>
<script>alert("x")</script>
</body></html>`
	path := writeFile(t, "rfp.HTML", page)

	in, err := Read(path)

	require.NoError(t, err)
	assert.Equal(t, FormatHTML, in.Format)
	assert.Equal(t, "RFP Portal Desa", in.Name)
	assert.Contains(t, in.Text, "# Kebutuhan")
	assert.Contains(t, in.Text, "**desa**")
	assert.Contains(t, in.Text, "Pengajuan surat")
	assert.NotContains(t, in.Text, "alert")
	assert.NotContains(t, in.Text, "color:red")
	assert.NotContains(t, in.Text, "Home")
}

func TestRead_UnsupportedFormat(t *testing.T) {
	path := writeFile(t, "brief.pdf", "%PDF-1.4")
	_, err := Read(path)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestRead_EmptyInput(t *testing.T) {
	_, err := Read(writeFile(t, "empty.md", "  \n\n"))
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = Read(writeFile(t, "empty.html", "<html><body><script>x()</script></body></html>"))
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestRead_MissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMarkdownTitle(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		expected string
	}{
		{"H1 at start", "# Hello World\n\nContent here", "Hello World"},
		{"H1 after text", "Some text\n\n# Title Here\n\nMore", "Title Here"},
		{"no H1", "## Section\n\nContent", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, markdownTitle(tt.markdown))
		})
	}
}

func TestCleanMarkdown(t *testing.T) {
	got := cleanMarkdown("\n\nA  \n\n\n\n\n\nB\t\n")
	assert.Equal(t, "A\n\n\nB", got)
}
