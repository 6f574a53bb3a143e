package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"carcatalog/internal/catalog"
)

const defaultBaseURL = "http://localhost:8080"

var (
	apiURL   string
	grpcAddr string
	timeout  time.Duration
	pretty   bool
)

var rootCmd = &cobra.Command{
	Use:           "carcatalog",
	Short:         "Query the car catalog over HTTP or gRPC",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", defaultBaseURL, "HTTP API base URL")
	rootCmd.PersistentFlags().StringVar(&grpcAddr, "grpc", "", "gRPC address; when set, queries go over gRPC instead of HTTP")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 15*time.Second, "request timeout")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", true, "pretty print JSON")

	var f listFlags
	carsCmd := &cobra.Command{
		Use:   "cars",
		Short: "List cars matching the given filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := newBackend()
			if err != nil {
				return err
			}
			defer b.Close()
			items, err := b.ListCars(cmd.Context(), f.filter(cmd))
			if err != nil {
				return err
			}
			return printJSON(items)
		},
	}
	f.register(carsCmd)

	carCmd := &cobra.Command{
		Use:   "car <id>",
		Short: "Show one car",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid car id %q", args[0])
			}
			b, err := newBackend()
			if err != nil {
				return err
			}
			defer b.Close()
			rec, err := b.GetCar(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(rec)
		},
	}

	valuesCmd := &cobra.Command{
		Use:   "values <attribute>",
		Short: "List distinct values: fuel-types, body-styles, engine-types, wheel-drives, gearboxes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// reject unknown attributes before dialing
			if _, err := catalog.ParseAttribute(args[0]); err != nil {
				return err
			}
			b, err := newBackend()
			if err != nil {
				return err
			}
			defer b.Close()
			values, err := b.DistinctValues(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(values)
		},
	}

	var model, brand string
	maxSpeedCmd := &cobra.Command{
		Use:   "max-speed",
		Short: "Average max speed of a model or a brand",
		RunE: func(cmd *cobra.Command, args []string) error {
			var q catalog.MaxSpeedQuery
			if cmd.Flags().Changed("model") {
				q.Model = &model
			}
			if cmd.Flags().Changed("brand") {
				q.Brand = &brand
			}
			b, err := newBackend()
			if err != nil {
				return err
			}
			defer b.Close()
			avg, err := b.MaxSpeed(cmd.Context(), q)
			if err != nil {
				return err
			}
			fmt.Println(strconv.FormatFloat(avg, 'f', -1, 64))
			return nil
		},
	}
	maxSpeedCmd.Flags().StringVar(&model, "model", "", "car model")
	maxSpeedCmd.Flags().StringVar(&brand, "brand", "", "brand title")

	var syncAddr string
	var useWS bool
	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream catalog load events",
		RunE: func(cmd *cobra.Command, args []string) error {
			if useWS {
				endpoint, err := websocketURL(apiURL, "/ws")
				if err != nil {
					return err
				}
				return runWebSocket(endpoint)
			}
			return runSyncTCP(syncAddr)
		},
	}
	watchCmd.Flags().StringVar(&syncAddr, "addr", "127.0.0.1:7070", "TCP sync server address")
	watchCmd.Flags().BoolVar(&useWS, "ws", false, "use the WebSocket endpoint of --api instead of TCP")

	var out string
	exportCmd := &cobra.Command{
		Use:   "export <json|csv>",
		Short: "Export the listed cars to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := newBackend()
			if err != nil {
				return err
			}
			defer b.Close()
			items, err := b.ListCars(cmd.Context(), catalog.Filter{})
			if err != nil {
				return err
			}
			switch args[0] {
			case "json":
				err = writeJSON(out, items)
			case "csv":
				err = writeCSV(out, items)
			default:
				return fmt.Errorf("unknown export format %q", args[0])
			}
			if err != nil {
				return err
			}
			fmt.Printf("exported %d cars to %s\n", len(items), out)
			return nil
		},
	}
	exportCmd.Flags().StringVar(&out, "out", "cars.out", "output file")

	rootCmd.AddCommand(carsCmd, carCmd, valuesCmd, maxSpeedCmd, watchCmd, exportCmd)
}

type listFlags struct {
	country, segment, search, bodyStyle string
	minDisplacement, minHorsepower      int
	minMaxSpeed, year                   int
	isFull                              bool
}

func (f *listFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.country, "country", "", "brand country")
	fl.StringVar(&f.segment, "segment", "", "market segment")
	fl.StringVar(&f.search, "search", "", "substring of model, generation or modification")
	fl.StringVar(&f.bodyStyle, "body-style", "", "accepted, not applied")
	fl.IntVar(&f.minDisplacement, "min-displacement", 0, "minimum engine displacement")
	fl.IntVar(&f.minHorsepower, "min-hp", 0, "minimum horsepower")
	fl.IntVar(&f.minMaxSpeed, "min-max-speed", 0, "minimum top speed")
	fl.IntVar(&f.year, "year", 0, "accepted, not applied")
	fl.BoolVar(&f.isFull, "full", false, "accepted, not applied")
}

// filter sets only the flags the user actually passed.
func (f *listFlags) filter(cmd *cobra.Command) catalog.Filter {
	changed := cmd.Flags().Changed
	var out catalog.Filter
	if changed("country") {
		out.Country = &f.country
	}
	if changed("segment") {
		out.Segment = &f.segment
	}
	if changed("search") {
		out.Search = &f.search
	}
	if changed("body-style") {
		out.BodyStyle = &f.bodyStyle
	}
	if changed("min-displacement") {
		out.MinEngineDisplacement = &f.minDisplacement
	}
	if changed("min-hp") {
		out.MinEngineHorsepower = &f.minHorsepower
	}
	if changed("min-max-speed") {
		out.MinMaxSpeed = &f.minMaxSpeed
	}
	if changed("year") {
		out.Year = &f.year
	}
	if changed("full") {
		out.IsFull = &f.isFull
	}
	return out
}
