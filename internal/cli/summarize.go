package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/gnosia/internal/summarize"
	"github.com/ppiankov/gnosia/internal/textutil"
)

var (
	summarizeTitle     string
	summarizeSentences int
	summarizeDomain    string
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize <file>",
	Short: "Print an extractive summary of a document",
	Long: `Summarize picks the few sentences that carry a document and prints them
to stdout. HTML and Markdown files are converted to plain text first,
by extension; everything else is read as-is.

Examples:
  gnosia summarize article.txt
  gnosia summarize press-release.html --title "Acme Q3 results" --sentences 3
  gnosia summarize filing.md --domain finance`,
	Args: cobra.ExactArgs(1),
	RunE: runSummarize,
}

func init() {
	rootCmd.AddCommand(summarizeCmd)

	summarizeCmd.Flags().StringVar(&summarizeTitle, "title", "", "document title, used to steer sentence selection")
	summarizeCmd.Flags().IntVar(&summarizeSentences, "sentences", 0, "summary length in sentences (0 derives it from document size)")
	summarizeCmd.Flags().StringVar(&summarizeDomain, "domain", "", "keyword domain: general, technology, finance, healthcare")
}

func runSummarize(cmd *cobra.Command, args []string) error {
	path := args[0]

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}

	text := string(data)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		text = textutil.HTMLToText(text)
	case ".md", ".markdown":
		text = textutil.MarkdownToText(text)
	}

	cfg := loadConfig()
	domain := cfg.Summarizer.Domain
	if summarizeDomain != "" {
		domain = summarizeDomain
	}
	maxSentences := cfg.Summarizer.MaxSentences
	if cmd.Flags().Changed("sentences") {
		maxSentences = summarizeSentences
	}

	summarizer := summarize.New(summarize.Options{
		Domain:       domain,
		MaxSentences: maxSentences,
	})
	summary := summarizer.Summarize(text, summarizeTitle)
	if summary == "" {
		return fmt.Errorf("no usable sentences in %s", path)
	}

	fmt.Println(summary)
	return nil
}
