package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/taku2365/llm-camera/internal/model"
)

// Markdown renders the inspector summary document: a file table plus
// the notes downstream ISP work relies on.
func Markdown(r model.InspectReport) string {
	var b strings.Builder

	b.WriteString("# iPhone ProRAW DNG Test Files\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", r.TestDate)
	b.WriteString("## File List\n\n")
	b.WriteString("| File | Size (MB) | Lens | Compatible |\n")
	b.WriteString("|------|-----------|------|------------|\n")
	for _, f := range r.Files {
		compat := "✗"
		if f.LibRawCompatible {
			compat = "✓"
		}
		fmt.Fprintf(&b, "| %s | %.1f | %s | %s |\n", f.Name, f.SizeMB, f.Lens, compat)
	}

	b.WriteString("\n## MetaISP Notes\n\n")
	b.WriteString("- All files are from iPhone 12 Pro Max\n")
	b.WriteString("- ProRAW format (Linear DNG)\n")
	b.WriteString("- 12-bit raw data\n")
	b.WriteString("- Device ID for MetaISP: 2 (iPhone)\n")
	b.WriteString("- Expected CFA pattern: RGGB\n")

	b.WriteString("\n## Usage\n\n")
	b.WriteString("These files can be used to test:\n")
	b.WriteString("1. LibRaw DNG loading\n")
	b.WriteString("2. Bayer pattern extraction\n")
	b.WriteString("3. MetaISP neural processing\n")
	b.WriteString("4. Device-specific rendering (iPhone style)\n")

	return b.String()
}

// WriteMarkdown writes the rendered summary to path.
func WriteMarkdown(path string, r model.InspectReport) error {
	if err := os.WriteFile(path, []byte(Markdown(r)), 0644); err != nil {
		return fmt.Errorf("report: write %s: %w", path, err)
	}
	return nil
}
