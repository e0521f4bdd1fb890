package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mgpai22/teaser/internal/editor"
	"github.com/mgpai22/teaser/internal/editor/fcpxml"
	"github.com/mgpai22/teaser/internal/plan"
)

var assembleCmd = &cobra.Command{
	Use:   "assemble [plan_file]",
	Short: "Build the teaser timeline as an FCPXML document",
	Long: `Assemble the clips of a teaser plan into a timeline and write it as
FCPXML, ready to import into DaVinci Resolve or Final Cut Pro.

The source media is the plan's "source" path (relative to the plan file)
unless --media points elsewhere. It is probed with ffprobe for its frame
rate and length; --no-probe skips that and declares the file as is.

Examples:
  teaser assemble teaser.yaml
  teaser assemble teaser.yaml --media ~/footage/interview.mkv -o interview.fcpxml
  teaser assemble teaser.yaml --no-probe --fps 25`,
	Args: cobra.ExactArgs(1),
	RunE: runAssemble,
}

func init() {
	rootCmd.AddCommand(assembleCmd)

	assembleCmd.Flags().
		String("media", "", "Path to the source media (default: the plan's source)")
	assembleCmd.Flags().
		String("project", "Teaser", "Event name in the FCPXML library")
	assembleCmd.Flags().
		Float64("fps", 0, "Timeline frame rate when the plan and media don't set one")
	assembleCmd.Flags().
		Bool("no-probe", false, "Declare the media without running ffprobe")
	assembleCmd.Flags().
		Duration("settle", 0, "Pause after each timeline edit")
}

func runAssemble(cmd *cobra.Command, args []string) error {
	planPath := args[0]
	ctx := context.Background()

	mediaFlag, _ := cmd.Flags().GetString("media")
	projectName, _ := cmd.Flags().GetString("project")
	fps, _ := cmd.Flags().GetFloat64("fps")
	noProbe, _ := cmd.Flags().GetBool("no-probe")
	settle, _ := cmd.Flags().GetDuration("settle")
	outputPath, _ := cmd.Flags().GetString("output")

	p, err := plan.Load(planPath)
	if err != nil {
		return err
	}
	if outputPath == "" {
		outputPath = strings.TrimSuffix(planPath, filepath.Ext(planPath)) + ".fcpxml"
	}

	mediaPath, err := sourcePath(planPath, p, mediaFlag)
	if err != nil {
		return err
	}

	host, err := newFCPXMLHost(ctx, p, mediaPath, projectName, fps, noProbe)
	if err != nil {
		return err
	}

	assembler := &editor.Assembler{Host: host, Logger: logger, Settle: settle}
	report, err := assembler.Assemble(ctx, p)
	if err != nil {
		return err
	}

	if err := host.Write(outputPath); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	report.Print(out)
	absOutput, _ := filepath.Abs(outputPath)
	fmt.Fprintf(out, "\nFCPXML written: %s\n", absOutput)
	return nil
}

// FCPXML host holding the source media under the plan's source name
func newFCPXMLHost(
	ctx context.Context,
	p *plan.Plan,
	mediaPath, projectName string,
	fps float64,
	noProbe bool,
) (*fcpxml.Host, error) {
	opts := fcpxml.Options{Project: projectName, FrameRate: p.FrameRate}
	if opts.FrameRate <= 0 {
		opts.FrameRate = fps
	}

	if noProbe {
		host := fcpxml.New(opts)
		host.AddMedia(fcpxml.Media{Name: p.Source, Path: mediaPath, FrameRate: opts.FrameRate})
		return host, nil
	}

	m, err := fcpxml.ProbeMedia(ctx, mediaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to probe %s (use --no-probe to skip): %w", mediaPath, err)
	}
	logger.Infow("Probed source media",
		"path", mediaPath,
		"duration", time.Duration(m.Duration*float64(time.Second)).String(),
		"fps", m.FrameRate,
	)
	if opts.FrameRate <= 0 {
		opts.FrameRate = m.FrameRate
	}

	m.Name = p.Source
	host := fcpxml.New(opts)
	host.AddMedia(m)
	return host, nil
}

// the --media flag, else the plan source relative to the plan file
func sourcePath(planPath string, p *plan.Plan, mediaFlag string) (string, error) {
	path := mediaFlag
	if path == "" {
		path = p.Source
		if !filepath.IsAbs(path) {
			path = filepath.Join(filepath.Dir(planPath), path)
		}
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("source media not found: %s (use --media)", path)
		}
		return "", err
	}
	return filepath.Abs(path)
}
