// Package main provides the finmodel CLI: financial statement extraction,
// analysis, and valuation workbook generation.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"finmodel/pkg/core/config"
	"finmodel/pkg/core/extract"
	"finmodel/pkg/core/llm"
	"finmodel/pkg/core/providers"
	"finmodel/pkg/core/report"
	"finmodel/pkg/core/store"
	"finmodel/pkg/core/valuation"
	"finmodel/pkg/core/workbook"
	"finmodel/pkg/models"
)

var (
	configPath string
	outputPath string
	sourceFlag string
	noCache    bool

	waccFlag     float64
	growthFlag   float64
	yearsFlag    int
	leverageFlag float64
	rateFlag     float64
	exitFlag     float64
	irrFlag      float64
	taxFlag      float64
)

func main() {
	config.LoadEnv()

	rootCmd := &cobra.Command{
		Use:   "finmodel",
		Short: "Extract financial statements and build valuation models",
		Long: `finmodel pulls standardized financials out of spreadsheets, CSVs,
HTML statements and SEC EDGAR filings, then builds DCF and LBO models on top.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if os.Getenv("DATABASE_URL") == "" {
				return nil
			}
			if err := store.InitDB(cmd.Context()); err != nil {
				log.Printf("database unavailable, using file cache only: %v", err)
			}
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "finmodel.hjson", "Config file (HJSON)")
	rootCmd.PersistentFlags().BoolVar(&noCache, "no-cache", false, "Skip the extraction cache")

	rootCmd.AddCommand(
		extractCmd(),
		fetchCmd(),
		quoteCmd(),
		scrapeCmd(),
		dcfCmd(),
		lboCmd(),
		reportCmd(),
		companiesCmd(),
	)

	err := rootCmd.Execute()
	store.Close()
	if err != nil {
		os.Exit(1)
	}
}

func extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [file]",
		Short: "Extract standardized financials from an XLSX or CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := runExtraction(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return emitJSON(result)
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	return cmd
}

func fetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch [ticker]",
		Short: "Fetch annual financials for a ticker from SEC EDGAR",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			cache := store.NewResultCache(cfg.CacheDir)
			source := "edgar:" + args[0]
			if !noCache {
				if cached := cache.Get(cmd.Context(), source); cached != nil {
					return emitJSON(cached)
				}
			}

			client := providers.NewEDGARClient()
			if cfg.EDGARUserAgent != "" {
				client.UserAgent = cfg.EDGARUserAgent
			}
			result, err := client.FetchByTicker(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := cache.Put(cmd.Context(), result); err != nil {
				log.Printf("warning: %v", err)
			}
			return emitJSON(result)
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	return cmd
}

func quoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quote [symbol]",
		Short: "Fetch the current market quote for a symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			quote, err := providers.NewYahooClient().FetchQuote(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return emitJSON(quote)
		},
	}
}

func scrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape [url]",
		Short: "Extract financials from HTML statement tables at a URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			tables, err := providers.NewStatementScraper().ScrapeTables(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			extractor, err := buildExtractor(cfg)
			if err != nil {
				return err
			}
			result, err := extractor.Extract(cmd.Context(), args[0], tables)
			if err != nil {
				return err
			}
			return emitJSON(result)
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	return cmd
}

func dcfCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dcf [file]",
		Short: "Build a DCF valuation workbook from extracted financials",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := runExtraction(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			drivers, err := valuation.DeriveDrivers(result, taxFlag)
			if err != nil {
				return err
			}
			baseRev, baseYear, ok := result.LatestValue(models.MetricRevenue)
			if !ok {
				return fmt.Errorf("no revenue series to project from")
			}
			proj := valuation.Project(baseYear, baseRev, drivers, yearsFlag)

			years := make([]int, len(proj))
			ufcf := make([]float64, len(proj))
			for i, p := range proj {
				years[i] = p.Year
				ufcf[i] = p.UFCF
			}

			netDebt := deriveNetDebt(result)
			shares := latestOrZero(result, models.MetricSharesOutstanding)

			f := workbook.NewValuationWorkbook()
			err = workbook.BuildDCFSheet(f, workbook.DCFSheetInput{
				CompanyName:       result.CompanyName,
				Years:             years,
				UFCF:              ufcf,
				WACC:              waccFlag,
				TerminalGrowth:    growthFlag,
				NetDebt:           netDebt,
				SharesOutstanding: shares,
			})
			if err != nil {
				return err
			}
			return saveWorkbook(f, result.CompanyName, "dcf")
		},
	}
	cmd.Flags().Float64Var(&waccFlag, "wacc", 0.10, "Discount rate")
	cmd.Flags().Float64Var(&growthFlag, "terminal-growth", 0.025, "Terminal growth rate")
	cmd.Flags().Float64Var(&taxFlag, "tax-rate", 0.25, "Tax rate")
	cmd.Flags().IntVar(&yearsFlag, "years", 5, "Projection years")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Workbook output path")
	return cmd
}

func lboCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lbo [file]",
		Short: "Build an LBO ability-to-pay workbook from extracted financials",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := runExtraction(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			drivers, err := valuation.DeriveDrivers(result, taxFlag)
			if err != nil {
				return err
			}
			baseRev, baseYear, ok := result.LatestValue(models.MetricRevenue)
			if !ok {
				return fmt.Errorf("no revenue series to project from")
			}
			entryEBITDA, _, ok := result.LatestValue(models.MetricEBITDA)
			if !ok {
				return fmt.Errorf("no ebitda series for leverage sizing")
			}
			proj := valuation.Project(baseYear, baseRev, drivers, yearsFlag)

			years := make([]int, len(proj))
			ebitda := make([]float64, len(proj))
			capex := make([]float64, len(proj))
			nwc := make([]float64, len(proj))
			for i, p := range proj {
				years[i] = p.Year
				ebitda[i] = p.EBITDA
				capex[i] = p.Capex
				nwc[i] = p.ChangeNWC
			}

			f := workbook.NewValuationWorkbook()
			err = workbook.BuildLBOSheet(f, workbook.LBOSheetInput{
				CompanyName:   result.CompanyName,
				EntryEBITDA:   entryEBITDA,
				LeverageRatio: leverageFlag,
				InterestRate:  rateFlag,
				TaxRate:       taxFlag,
				ExitMultiple:  exitFlag,
				TargetIRR:     irrFlag,
				Years:         years,
				EBITDA:        ebitda,
				Capex:         capex,
				ChangeNWC:     nwc,
			})
			if err != nil {
				return err
			}
			return saveWorkbook(f, result.CompanyName, "lbo")
		},
	}
	cmd.Flags().Float64Var(&leverageFlag, "leverage", 5.0, "Entry debt / EBITDA")
	cmd.Flags().Float64Var(&rateFlag, "interest-rate", 0.08, "Blended cost of debt")
	cmd.Flags().Float64Var(&taxFlag, "tax-rate", 0.25, "Tax rate")
	cmd.Flags().Float64Var(&exitFlag, "exit-multiple", 9.0, "Exit EV / EBITDA")
	cmd.Flags().Float64Var(&irrFlag, "target-irr", 0.20, "Sponsor target IRR")
	cmd.Flags().IntVar(&yearsFlag, "years", 5, "Holding period years")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Workbook output path")
	return cmd
}

func reportCmd() *cobra.Command {
	var asHTML bool
	cmd := &cobra.Command{
		Use:   "report [file]",
		Short: "Render a Markdown or HTML analysis report for a source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := runExtraction(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			rep := report.New()
			rep.AddExtraction(result)
			rep.AddAnalysis(result)

			if drivers, err := valuation.DeriveDrivers(result, taxFlag); err == nil {
				if baseRev, baseYear, ok := result.LatestValue(models.MetricRevenue); ok {
					proj := valuation.Project(baseYear, baseRev, drivers, yearsFlag)
					in := valuation.DCFInput{
						Projections:       proj,
						WACC:              waccFlag,
						TerminalGrowth:    growthFlag,
						NetDebt:           deriveNetDebt(result),
						SharesOutstanding: latestOrZero(result, models.MetricSharesOutstanding),
					}
					rep.AddDCF(in, valuation.CalculateDCF(in))

					if entryEBITDA, _, ok := result.LatestValue(models.MetricEBITDA); ok && len(proj) > 0 {
						lboIn := valuation.LBOInputFromProjection(entryEBITDA, proj, valuation.LBOAssumptions{
							LeverageRatio: leverageFlag,
							InterestRate:  rateFlag,
							TaxRate:       taxFlag,
							ExitMultiple:  exitFlag,
							TargetIRR:     irrFlag,
						})
						rep.AddLBO(lboIn, valuation.CalculateLBO(lboIn))
					}
				}
			}

			body := rep.Markdown()
			if asHTML {
				if body, err = rep.HTML(); err != nil {
					return err
				}
			}
			if outputPath != "" {
				return os.WriteFile(outputPath, []byte(body), 0o644)
			}
			fmt.Println(body)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asHTML, "html", false, "Render HTML instead of Markdown")
	cmd.Flags().Float64Var(&waccFlag, "wacc", 0.10, "Discount rate")
	cmd.Flags().Float64Var(&growthFlag, "terminal-growth", 0.025, "Terminal growth rate")
	cmd.Flags().Float64Var(&taxFlag, "tax-rate", 0.25, "Tax rate")
	cmd.Flags().Float64Var(&leverageFlag, "leverage", 5.0, "Entry debt / EBITDA")
	cmd.Flags().Float64Var(&rateFlag, "interest-rate", 0.08, "Blended cost of debt")
	cmd.Flags().Float64Var(&exitFlag, "exit-multiple", 9.0, "Exit EV / EBITDA")
	cmd.Flags().Float64Var(&irrFlag, "target-irr", 0.20, "Sponsor target IRR")
	cmd.Flags().IntVar(&yearsFlag, "years", 5, "Projection years")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	return cmd
}

func companiesCmd() *cobra.Command {
	var company string
	cmd := &cobra.Command{
		Use:   "companies",
		Short: "List companies with stored extractions, or dump one by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if store.GetPool() == nil {
				return fmt.Errorf("companies requires DATABASE_URL to be configured")
			}
			if company != "" {
				result, err := store.LoadResult(cmd.Context(), company, sourceFlag)
				if err != nil {
					return err
				}
				if result == nil {
					return fmt.Errorf("no stored extraction for %q from %q", company, sourceFlag)
				}
				return emitJSON(result)
			}
			names, err := store.ListCompanies(cmd.Context())
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&company, "name", "", "Dump the stored extraction for this company")
	cmd.Flags().StringVar(&sourceFlag, "source", "", "Source the extraction was stored under")
	return cmd
}

// runExtraction is the shared read-extract-cache path for file sources.
func runExtraction(ctx context.Context, path string) (*models.ExtractionResult, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	cache := store.NewResultCache(cfg.CacheDir)
	if !noCache {
		if cached := cache.Get(ctx, path); cached != nil {
			log.Printf("using cached extraction for %s", path)
			return cached, nil
		}
	}

	tables, err := workbook.ReadSource(path)
	if err != nil {
		return nil, err
	}

	extractor, err := buildExtractor(cfg)
	if err != nil {
		return nil, err
	}
	result, err := extractor.Extract(ctx, path, tables)
	if err != nil {
		return nil, err
	}

	if !noCache {
		if err := cache.Put(ctx, result); err != nil {
			log.Printf("warning: %v", err)
		}
	}
	return result, nil
}

func buildExtractor(cfg config.Config) (*extract.Extractor, error) {
	dict, err := cfg.Synonyms()
	if err != nil {
		return nil, err
	}
	extractor := extract.NewExtractor(dict).WithThreshold(cfg.MatchThreshold)
	if cfg.UseLLMMapper {
		provider, err := llm.NewGeminiProvider("")
		if err != nil {
			log.Printf("llm mapper disabled: %v", err)
		} else {
			extractor = extractor.WithLabelMapper(llm.NewMetricMapper(provider))
		}
	}
	return extractor, nil
}

func deriveNetDebt(r *models.ExtractionResult) float64 {
	return latestOrZero(r, models.MetricTotalDebt) - latestOrZero(r, models.MetricCash)
}

func latestOrZero(r *models.ExtractionResult, m models.Metric) float64 {
	if v, _, ok := r.LatestValue(m); ok {
		return v
	}
	return 0
}

func emitJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if outputPath != "" {
		return os.WriteFile(outputPath, data, 0o644)
	}
	fmt.Println(string(data))
	return nil
}

func saveWorkbook(f *excelize.File, company, model string) error {
	path := outputPath
	if path == "" {
		dir := "output"
		if cfg, err := config.Load(configPath); err == nil {
			dir = cfg.OutputDir
		}
		path = filepath.Join(dir, fmt.Sprintf("%s_%s.xlsx", sanitize(company), model))
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func sanitize(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out = append(out, r)
		case r == ' ' || r == '-' || r == '_':
			out = append(out, '_')
		}
	}
	if len(out) == 0 {
		return "company"
	}
	return string(out)
}
