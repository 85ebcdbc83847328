package shell

import (
	"fmt"
	"strings"

	"octotube/internal/batch"
	"octotube/internal/model"
	"octotube/internal/util/format"
)

const asciiHeader = `
 ██████\              ██\            █████████\       ██\
██  __██\             ██ |           \__██  __|       ██ |
██ /  ██ | ███████\ ██████\    ██████\  ██ |██\   ██\ ███████\   ██████\
██ |  ██ |██  _____|\_██  _|  ██  __██\ ██ |██ |  ██ |██  __██\ ██  __██\
██ |  ██ |██ /        ██ |    ██ /  ██ |██ |██ |  ██ |██ |  ██ |████████ |
██ |  ██ |██ |        ██ |██\ ██ |  ██ |██ |██ |  ██ |██ |  ██ |██   ____|
 ██████  |\████████\  \█████  |\██████  |██ |\██████  |███████ |█████████\
 \______/  \_______|   \____/   \______/ \__| \______/ \_______/ \_______|
`

// Header renders the startup banner.
func (s *Session) Header(version string) {
	s.Println(s.styles.Title.Render(asciiHeader))
	s.Println(s.styles.Info.Render("YouTube Content Downloader " + version))
	s.Println(s.styles.Info.Render(strings.Repeat("=", 40)))
	s.Println("")
}

// DescribeContent announces what the resolver found.
func (s *Session) DescribeContent(desc model.ContentDescriptor) {
	switch desc.Kind {
	case model.ContentPlaylist:
		s.Println("")
		s.Println(s.styles.Success.Render("📚 Playlist detected: ") + desc.Title)
		s.Println(s.styles.Info.Render(fmt.Sprintf("Videos in playlist: %d", len(desc.Items))))
	case model.ContentSingle:
		s.Println("")
		s.Println(s.styles.Success.Render("🎥 Single video detected: ") + desc.Title)
	}
}

// ItemLine renders the one-line outcome printed as each item finishes.
func (s *Session) ItemLine(p batch.ItemProgress) {
	icon := s.styles.Error.Render("✗")
	switch p.Result.Status {
	case model.StatusSuccess:
		icon = s.styles.Success.Render("✓")
	case model.StatusUnavailable:
		icon = s.styles.Warning.Render("⚠")
	}
	sizeKiB := format.KiB(p.Result.SizeBytes)
	s.Println(fmt.Sprintf("[%d/%d] %s %s | size: %dKiB | time: %s",
		p.Index, p.Total, icon, p.Result.Title, sizeKiB, format.Clock(p.Elapsed)))
	if !p.Result.OK() && p.Result.Message != "" {
		s.Println("   → " + s.styles.Error.Render(p.Result.Message))
	}
}

// FinalBar renders the closing aggregate bar.
func (s *Session) FinalBar(report model.RunReport) {
	bar := strings.Repeat("-", 20) + ">"
	s.Println(fmt.Sprintf("100%% %s %dKiB %s",
		bar, format.KiB(report.TotalBytes), format.Clock(report.TotalElapsed)))
}

// Report renders the final run summary.
func (s *Session) Report(report model.RunReport) {
	s.Println("")
	s.Println(s.styles.Success.Render("✅ Download completed!"))
	s.Println(s.styles.Info.Render("Results:"))
	s.Println(" - " + s.styles.Success.Render(fmt.Sprintf("Success: %d/%d", report.SuccessCount, report.TotalItems)))
	s.Println(" - " + s.styles.Error.Render(fmt.Sprintf("Failed: %d/%d", report.FailureCount(), report.TotalItems)))
	s.Println(" - " + s.styles.Info.Render(fmt.Sprintf("Success rate: %.2f%%", report.SuccessRate())))
}
