package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/kinemech/linksim/internal/config"
	"github.com/kinemech/linksim/internal/export"
	"github.com/kinemech/linksim/internal/geom"
	"github.com/kinemech/linksim/internal/linkage"
	"github.com/kinemech/linksim/internal/storage"
	"github.com/kinemech/linksim/internal/viz"
)

var (
	dataDir    string
	configFile string
	samples    int
	jointLabel string
	axis       string
	outFile    string
	frameTime  float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "linksim",
		Short: "planar linkage kinematics lab",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".linksim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "simulate a linkage over a full cycle and store the trace",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLinkage,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "linkage definition file (yaml)")
	runCmd.Flags().IntVar(&samples, "samples", config.DefaultSamples, "time samples over [0,1]")

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a joint coordinate trace",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&jointLabel, "joint", "", "joint label (default: first moving joint)")
	plotCmd.Flags().StringVar(&axis, "axis", "y", "coordinate to plot: x or y")

	svgCmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "export traced joint paths as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  svgRun,
	}
	svgCmd.Flags().StringVar(&outFile, "out", "", "output file (default <run_id>.svg)")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [preset]",
		Short: "render the linkage pose at one time as SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  snapshotLinkage,
	}
	snapshotCmd.Flags().StringVar(&configFile, "config", "", "linkage definition file (yaml)")
	snapshotCmd.Flags().Float64Var(&frameTime, "t", 0, "simulation time in [0,1]")
	snapshotCmd.Flags().StringVar(&outFile, "out", "", "output file (default <name>.svg)")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "animate a linkage in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  liveLinkage,
	}
	liveCmd.Flags().StringVar(&configFile, "config", "", "linkage definition file (yaml)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in linkage presets",
		RunE:  listPresets,
	}

	validateCmd := &cobra.Command{
		Use:   "validate [preset]",
		Short: "check that a linkage is well-formed and solvable",
		Args:  cobra.MaximumNArgs(1),
		RunE:  validateLinkage,
	}
	validateCmd.Flags().StringVar(&configFile, "config", "", "linkage definition file (yaml)")

	rootCmd.AddCommand(runCmd, plotCmd, svgCmd, snapshotCmd, liveCmd, listCmd, presetsCmd, validateCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, viz.ErrStyle.Render(err.Error()))
		os.Exit(1)
	}
}

// loadDefinition picks the linkage definition from --config or a preset name.
func loadDefinition(args []string) (*config.Definition, error) {
	if configFile != "" {
		return config.Load(configFile)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("specify a preset name or --config (see `linksim presets`)")
	}
	def, ok := config.Presets[args[0]]
	if !ok {
		return nil, fmt.Errorf("unknown preset %q (see `linksim presets`)", args[0])
	}
	return def, nil
}

// simulate steps the linkage through a full cycle and collects every joint's
// path, in the linkage's joint declaration order.
func simulate(l *linkage.Linkage, n int) ([]float64, []string, map[string][]geom.Point, error) {
	if n < 2 {
		n = 2
	}
	var order []string
	for _, j := range l.Joints() {
		order = append(order, j.Label())
	}
	times := make([]float64, 0, n)
	trace := make(map[string][]geom.Point, len(order))
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		if err := l.SimulateToTime(t); err != nil {
			return nil, nil, nil, fmt.Errorf("at t=%.4f: %w", t, err)
		}
		times = append(times, t)
		for _, j := range l.Joints() {
			trace[j.Label()] = append(trace[j.Label()], j.Location())
		}
	}
	return times, order, trace, nil
}

func runLinkage(cmd *cobra.Command, args []string) error {
	def, err := loadDefinition(args)
	if err != nil {
		return err
	}
	l, err := def.Build()
	if err != nil {
		return err
	}
	times, order, trace, err := simulate(l, samples)
	if err != nil {
		return err
	}

	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}
	runID, err := store.Save(def.Name, l.Resolution(), order, times, trace)
	if err != nil {
		return err
	}

	fmt.Println(viz.Title.Render(def.Name) + viz.Subtle.Render(fmt.Sprintf("  %d samples", len(times))))
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "JOINT\tFINAL X\tFINAL Y\tFIXED")
	for _, j := range l.Joints() {
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%v\n", j.Label(), j.Location().X(), j.Location().Y(), j.Fixed())
	}
	w.Flush()
	fmt.Println(viz.Label.Render("saved ") + viz.Value.Render(runID))
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	meta, err := store.Meta(args[0])
	if err != nil {
		return err
	}
	_, trace, err := store.LoadTrace(args[0])
	if err != nil {
		return err
	}

	label := jointLabel
	if label == "" && len(meta.Joints) > 0 {
		label = meta.Joints[0]
	}
	path, ok := trace[label]
	if !ok {
		return fmt.Errorf("run %s has no joint %q", args[0], label)
	}

	series := make([]float64, len(path))
	for i, p := range path {
		if axis == "x" {
			series[i] = p.X()
		} else {
			series[i] = p.Y()
		}
	}
	fmt.Println(asciigraph.Plot(series,
		asciigraph.Height(15),
		asciigraph.Width(70),
		asciigraph.Caption(fmt.Sprintf("%s: joint %s, %s over time", args[0], label, axis))))
	return nil
}

func svgRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	meta, err := store.Meta(args[0])
	if err != nil {
		return err
	}
	_, trace, err := store.LoadTrace(args[0])
	if err != nil {
		return err
	}

	out := outFile
	if out == "" {
		out = args[0] + ".svg"
	}
	svg := export.TraceSVG(meta.Joints, trace, 800, 600)
	if err := os.WriteFile(out, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Println(viz.Label.Render("wrote ") + viz.Value.Render(out))
	return nil
}

func snapshotLinkage(cmd *cobra.Command, args []string) error {
	def, err := loadDefinition(args)
	if err != nil {
		return err
	}
	l, err := def.Build()
	if err != nil {
		return err
	}
	if err := l.SimulateToTime(frameTime); err != nil {
		return err
	}

	out := outFile
	if out == "" {
		out = def.Name + ".svg"
	}
	if err := os.WriteFile(out, []byte(export.FrameSVG(l, 800, 600)), 0644); err != nil {
		return err
	}
	fmt.Println(viz.Label.Render("wrote ") + viz.Value.Render(out))
	return nil
}

func liveLinkage(cmd *cobra.Command, args []string) error {
	def, err := loadDefinition(args)
	if err != nil {
		return err
	}
	l, err := def.Build()
	if err != nil {
		return err
	}

	// Coarse pre-pass to size a stable viewport over the whole cycle.
	_, _, trace, err := simulate(l, 64)
	if err != nil {
		return err
	}
	var all []geom.Point
	for _, path := range trace {
		all = append(all, path...)
	}
	return viz.RunLive(def.Name, l, viz.FitViewport(all, 1))
}

func listRuns(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	runs, err := store.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println(viz.Subtle.Render("no stored runs"))
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tNAME\tSAMPLES\tJOINTS\tWHEN")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
			r.ID, r.Name, r.Samples, len(r.Joints), r.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	names := make([]string, 0, len(config.Presets))
	for name := range config.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tJOINTS\tBARS\tDRIVERS")
	for _, name := range names {
		def := config.Presets[name]
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", name, len(def.Joints), len(def.Bars), len(def.Drivers))
	}
	return w.Flush()
}

func validateLinkage(cmd *cobra.Command, args []string) error {
	def, err := loadDefinition(args)
	if err != nil {
		return err
	}
	l, err := def.Build()
	if err != nil {
		return err
	}
	if err := l.Compile(); err != nil {
		return err
	}
	fmt.Println(viz.Value.Render("ok") + viz.Subtle.Render(fmt.Sprintf("  %s: %d joints, %d bars, %d drivers, solvable",
		def.Name, len(l.Joints()), len(l.Bars()), len(l.Drivers()))))
	return nil
}
