package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-optimax/internal/catalog"
	"github.com/jonathan/resume-optimax/internal/config"
	"github.com/jonathan/resume-optimax/internal/enhancement"
	"github.com/jonathan/resume-optimax/internal/ingestion"
	"github.com/jonathan/resume-optimax/internal/observability"
	"github.com/jonathan/resume-optimax/schemas"

	schemavalidate "github.com/jonathan/resume-optimax/internal/schemas"
)

type enhanceOptions struct {
	resumePath string
	jobPath    string
	jobURL     string
	skills     []string
	jobTitle   string
	serverURL  string
	outPath    string
	useBrowser bool
	timeout    time.Duration
	verbose    bool
}

func newEnhanceCmd(configPath *string) *cobra.Command {
	opts := &enhanceOptions{}

	cmd := &cobra.Command{
		Use:   "enhance",
		Short: "Enhance a resume against a job description",
		Long:  "Send a resume and job description to the relay and print the enhanced resume with improvement tips.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("server") {
				opts.serverURL = cfg.ServerURL
			}
			if !cmd.Flags().Changed("use-browser") {
				opts.useBrowser = cfg.UseBrowser
			}
			return runEnhance(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.resumePath, "resume", "r", "", "Path to resume file (.txt, .pdf, .doc, .docx)")
	cmd.Flags().StringVarP(&opts.jobPath, "job", "j", "", "Path to text file containing the job description")
	cmd.Flags().StringVarP(&opts.jobURL, "job-url", "u", "", "URL to fetch the job description from")
	cmd.Flags().StringSliceVar(&opts.skills, "skills", nil, "Comma-separated skills to target")
	cmd.Flags().StringVar(&opts.jobTitle, "job-title", "", "Target job title")
	cmd.Flags().StringVar(&opts.serverURL, "server", enhancement.DefaultBaseURL, "Relay base URL")
	cmd.Flags().StringVarP(&opts.outPath, "out", "o", "", "Write the enhancement response JSON to this file")
	cmd.Flags().BoolVar(&opts.useBrowser, "use-browser", false, "Use a headless browser when a job page needs JavaScript")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Request timeout (0 waits for the relay)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Print the job description preview and failure details")

	_ = cmd.MarkFlagRequired("resume")
	return cmd
}

func runEnhance(cmd *cobra.Command, opts *enhanceOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	printer := observability.NewPrinter(stdout)

	if opts.jobPath == "" && opts.jobURL == "" {
		return fmt.Errorf("either --job or --job-url must be provided")
	}
	if opts.jobPath != "" && opts.jobURL != "" {
		return fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	}

	upload, err := ingestion.ReadUpload(opts.resumePath)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}
	if upload.RawBinary {
		fmt.Fprintf(stderr, "Warning: %s is a %s file; its content is sent as-is and may not be readable text\n",
			upload.Filename, strings.TrimPrefix(string(upload.Format), "."))
	}

	jobDescription, source, err := loadJobDescription(ctx, opts)
	if err != nil {
		return err
	}
	if opts.verbose {
		printer.PrintJobPosting(source, jobDescription)
	}

	var skills []string
	for _, s := range opts.skills {
		skills = catalog.AddSkill(skills, s)
	}
	printer.PrintSelection(opts.jobTitle, skills)

	// A previous result is discarded before the new request goes out
	if opts.outPath != "" {
		if err := os.Remove(opts.outPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to clear previous output: %w", err)
		}
	}

	requester := enhancement.NewRequester(opts.serverURL, &http.Client{Timeout: opts.timeout})
	fmt.Fprintln(stderr, "Enhancing resume...")

	resp, err := requester.Enhance(ctx, enhancement.Request{
		ResumeText:     upload.Text,
		JobDescription: jobDescription,
		SelectedSkills: skills,
		JobTitle:       opts.jobTitle,
	})
	if err != nil {
		if errors.Is(err, enhancement.ErrMissingInput) {
			return err
		}
		fmt.Fprintln(stderr, enhancement.FailureNotice)
		if opts.verbose {
			return err
		}
		return enhancement.ErrEnhancementFailed
	}

	if opts.outPath != "" {
		if err := writeResponse(opts.outPath, resp); err != nil {
			return err
		}
		fmt.Fprintf(stderr, "Saved response to %s\n", opts.outPath)
	}

	printer.PrintEnhancedResume(resp.EnhancedResume)
	printer.PrintTips(catalog.StaticTips())
	return nil
}

// loadJobDescription returns the job description text and a label for where it came from
func loadJobDescription(ctx context.Context, opts *enhanceOptions) (string, string, error) {
	if opts.jobPath != "" {
		data, err := os.ReadFile(opts.jobPath)
		if err != nil {
			return "", "", fmt.Errorf("failed to read job description: %w", err)
		}
		return string(data), opts.jobPath, nil
	}

	text, metadata, err := ingestion.IngestFromURL(ctx, opts.jobURL, opts.useBrowser)
	if err != nil {
		return "", "", fmt.Errorf("failed to ingest job posting: %w", err)
	}
	return text, fmt.Sprintf("%s (%s)", metadata.URL, metadata.Platform), nil
}

// writeResponse saves resp as indented JSON and checks it against the response schema
func writeResponse(path string, resp *enhancement.Response) error {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := schemavalidate.ValidateFile(schemas.EnhancementResponse, path); err != nil {
		return fmt.Errorf("saved response does not match schema: %w", err)
	}
	return nil
}
