package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/chaospanel/internal/config"
	"github.com/san-kum/chaospanel/internal/journal"
	"github.com/san-kum/chaospanel/internal/logging"
	"github.com/san-kum/chaospanel/internal/panel"
	"github.com/san-kum/chaospanel/internal/param"
	"github.com/san-kum/chaospanel/internal/pendulum"
	"github.com/san-kum/chaospanel/internal/replay"
	"github.com/san-kum/chaospanel/internal/storage"
	"github.com/san-kum/chaospanel/internal/tui"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	logLevel   string
	logFormat  string
	logFile    string
	preset     string
	extended   bool

	csvOut      bool
	jsonOut     bool
	plotSpec    string
	saveSession bool

	importOut string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "chaospanel",
		Short:        "control panel for the double pendulum chaos map",
		SilenceUsage: true,
		RunE:         runTUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".chaospanel", "data directory for saved sessions")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	pf.StringVar(&logFormat, "log-format", config.DefaultLogFormat, "log format (text, json)")
	pf.StringVar(&preset, "preset", "", "apply a preset to the panel defaults")
	pf.BoolVar(&extended, "extended", false, "include the display angles and GPU switch")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run the terminal panel",
		RunE:  runTUI,
	}
	for _, c := range []*cobra.Command{rootCmd, tuiCmd} {
		c.Flags().StringVar(&logFile, "log-file", "", "write logs to this file while the panel is open")
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "print the parameter table",
		RunE:  showDefinitions,
	}

	codesCmd := &cobra.Command{
		Use:   "codes",
		Short: "print parameter codes as NAME=code lines",
		RunE:  printCodes,
	}

	replayCmd := &cobra.Command{
		Use:   "replay [script]",
		Short: "drive a headless panel from a yaml event script",
		Args:  cobra.ExactArgs(1),
		RunE:  runReplay,
	}
	replayCmd.Flags().BoolVar(&csvOut, "csv", false, "export the write journal as CSV")
	replayCmd.Flags().BoolVar(&jsonOut, "json", false, "export the write journal as JSON")
	replayCmd.Flags().StringVar(&plotSpec, "plot", "", "plot written values of code[:index]")
	replayCmd.Flags().BoolVar(&saveSession, "save", false, "save the session to the data directory")

	sessionsCmd := &cobra.Command{
		Use:   "sessions",
		Short: "list saved replay sessions",
		RunE:  listSessions,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [session] [code[:index]]",
		Short: "plot the values a saved session wrote",
		Args:  cobra.ExactArgs(2),
		RunE:  plotSession,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSUMMARY")
			for _, name := range config.ListPresets() {
				p, _ := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\n", name, p.Summary)
			}
			w.Flush()
		},
	}

	importCmd := &cobra.Command{
		Use:   "import [parameters.json]",
		Short: "convert a generator parameter file to a chaospanel config",
		Args:  cobra.ExactArgs(1),
		RunE:  importParameters,
	}
	importCmd.Flags().StringVarP(&importOut, "out", "o", "chaospanel.yaml", "output config path")

	rootCmd.AddCommand(tuiCmd, showCmd, codesCmd, replayCmd, sessionsCmd, plotCmd, presetsCmd, importCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config file, if any, and lets explicitly set flags
// override it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = logFormat
	}
	if flags.Changed("preset") {
		cfg.Preset = preset
	}
	if flags.Changed("extended") {
		cfg.Extended = extended
	}
	return cfg, nil
}

func setup(cmd *cobra.Command, logOut io.Writer) (*config.Config, []param.Def, *slog.Logger, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	logger, err := logging.New(logOut, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, nil, nil, err
	}
	defs, err := cfg.Definitions()
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, defs, logger, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	var logOut io.Writer = io.Discard
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		logOut = f
	}

	cfg, defs, logger, err := setup(cmd, logOut)
	if err != nil {
		return err
	}

	params := pendulum.NewParams()
	logger.Info("opening panel", "title", cfg.Panel.Title, "controls", len(defs))
	return tui.RunInteractive(tui.Options{
		Title:    cfg.Panel.Title,
		Defs:     defs,
		Store:    params,
		Snapshot: params.Snapshot,
		Logger:   logger,
	})
}

func showDefinitions(cmd *cobra.Command, args []string) error {
	_, defs, _, err := setup(cmd, os.Stderr)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tTYPE\tLABEL\tVALUE\tMIN\tMAX\tSTEP")
	for _, d := range defs {
		switch {
		case d.Type == param.Bool:
			fmt.Fprintf(w, "%d\t%s\t%s\t%t\t\t\t\n", d.Code, d.Type, d.Label, d.Checked)
		case d.Type == param.String:
			fmt.Fprintf(w, "%d\t%s\t%s\t%d entries\t\t\t\n", d.Code, d.Type, d.Label, d.Count)
		default:
			step := param.FormatVector(d.Step)
			if step == "" {
				step = "-"
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
				d.Code, d.Type, d.Label,
				param.FormatVector(d.Value), param.FormatVector(d.Min), param.FormatVector(d.Max), step)
		}
	}
	return w.Flush()
}

func printCodes(cmd *cobra.Command, args []string) error {
	_, defs, _, err := setup(cmd, os.Stderr)
	if err != nil {
		return err
	}
	for _, d := range defs {
		fmt.Printf("%s=%d\n", d.ConstName(), d.Code)
	}
	return nil
}

func runReplay(cmd *cobra.Command, args []string) error {
	if csvOut && jsonOut {
		return fmt.Errorf("--csv and --json are exclusive")
	}
	cfg, defs, logger, err := setup(cmd, os.Stderr)
	if err != nil {
		return err
	}
	script, err := replay.Load(args[0])
	if err != nil {
		return fmt.Errorf("load script: %w", err)
	}

	rec := journal.NewRecorder(pendulum.NewParams())
	tree := panel.NewTree()
	if err := panel.New(rec, tree, panel.WithLogger(logger)).Assemble(defs); err != nil {
		return err
	}
	if err := replay.Run(tree, script); err != nil {
		return err
	}
	logger.Info("replay finished", "events", len(script.Events), "writes", rec.Len())

	entries := rec.Entries()
	if saveSession {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		id, err := st.Save(storage.SessionMetadata{
			Script:   args[0],
			Preset:   cfg.Preset,
			Extended: cfg.Extended,
			Events:   len(script.Events),
		}, entries)
		if err != nil {
			return fmt.Errorf("save session: %w", err)
		}
		logger.Info("session saved", "id", id, "dir", dataDir)
	}

	switch {
	case csvOut:
		return journal.WriteCSV(os.Stdout, entries)
	case jsonOut:
		return journal.WriteJSON(os.Stdout, entries)
	case plotSpec != "":
		return plotSeries(entries, defs, plotSpec)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEQ\tELAPSED\tCALL")
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%s\n", e.Seq, e.Elapsed, e.Write)
	}
	return w.Flush()
}

// parsePlotSpec reads "code" or "code:index".
func parsePlotSpec(s string) (param.Code, int, error) {
	codeText, indexText, hasIndex := strings.Cut(s, ":")
	code, err := strconv.Atoi(codeText)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid plot code %q", codeText)
	}
	index := 0
	if hasIndex {
		index, err = strconv.Atoi(indexText)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid plot index %q", indexText)
		}
	}
	return param.Code(code), index, nil
}

// plotCaption names code from the active table, preferring the key over the
// label.
func plotCaption(defs []param.Def, code param.Code, index int) string {
	caption := fmt.Sprintf("code %d", code)
	for _, d := range defs {
		if d.Code != code {
			continue
		}
		caption = d.Label
		if d.Key != "" {
			caption = d.Key
		}
		break
	}
	if index > 0 {
		caption = fmt.Sprintf("%s[%d]", caption, index)
	}
	return caption
}

func plotSeries(entries []journal.Entry, defs []param.Def, spec string) error {
	code, index, err := parsePlotSpec(spec)
	if err != nil {
		return err
	}
	data := journal.Series(entries, code, index)
	if len(data) == 0 {
		fmt.Printf("no writes for code %d\n", code)
		return nil
	}

	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(plotCaption(defs, code, index)),
	)
	fmt.Println(graph)
	return nil
}

func listSessions(cmd *cobra.Command, args []string) error {
	sessions, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("no sessions found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCRIPT\tTIME\tEVENTS\tWRITES\tPRESET")
	for _, s := range sessions {
		p := s.Preset
		if p == "" {
			p = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
			s.ID, s.Script, s.Timestamp.Format("2006-01-02 15:04:05"), s.Events, s.Writes, p)
	}
	return w.Flush()
}

func plotSession(cmd *cobra.Command, args []string) error {
	_, defs, _, err := setup(cmd, os.Stderr)
	if err != nil {
		return err
	}
	entries, err := storage.New(dataDir).LoadWrites(args[0])
	if err != nil {
		return fmt.Errorf("load session %s: %w", args[0], err)
	}
	return plotSeries(entries, defs, args[1])
}

func importParameters(cmd *cobra.Command, args []string) error {
	defs, err := config.LoadParameterFile(args[0])
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Parameters = defs
	if err := config.Save(importOut, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %d parameters to %s\n", len(defs), importOut)
	return nil
}
