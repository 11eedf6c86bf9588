package main

import (
	"flag"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/mtwebster/iemail/config"
	"github.com/mtwebster/iemail/discourse"
	"github.com/mtwebster/iemail/imap"
)

// Constants

// Exit codes of iemail-parse.
const (
	exitOK = iota
	exitConfig
	exitInput
	exitParse
)

// Functions

// initLogger initializes a JSON gokit-logger set
// to the according log level supplied via cli flag.
func initLogger(loglevel string) log.Logger {

	logger := log.NewJSONLogger(log.NewSyncWriter(os.Stdout))
	logger = log.With(logger,
		"ts", log.DefaultTimestampUTC,
		"caller", log.DefaultCaller,
	)

	switch strings.ToLower(loglevel) {
	case "info":
		logger = level.NewFilter(logger, level.AllowInfo())
	case "warn":
		logger = level.NewFilter(logger, level.AllowWarn())
	case "error":
		logger = level.NewFilter(logger, level.AllowError())
	default:
		logger = level.NewFilter(logger, level.AllowDebug())
	}

	return logger
}

// loadConfig reads the optional config and .env
// files, falling back to defaults.
func loadConfig(configFile string, envFile string) (*config.Config, error) {

	conf := config.Default()

	if configFile != "" {

		var err error

		conf, err = config.LoadConfig(configFile)
		if err != nil {
			return nil, err
		}
	}

	if envFile != "" {

		env, err := config.LoadEnv(envFile)
		if err != nil {
			return nil, err
		}

		env.Apply(conf)
	}

	return conf, nil
}

// newReader assembles parser, discourse logger and
// the logging and metrics wrappers for input.
func newReader(logger log.Logger, conf *config.Config, m *ParserMetrics, input io.Reader) imap.ResponseReader {

	if conf.Parser.DebugRawStream {
		input = imap.NewRawLogReader(input, logger)
	}

	rec := discourse.NewLogger(log.With(logger, "component", "discourse"), conf.Parser.DiscourseLines)
	p := imap.NewParser(input, rec, log.With(logger, "component", "parser"))

	var r imap.ResponseReader = p
	r = imap.NewLoggingReader(r, logger)
	r = imap.NewMetricsReader(r, m.Responses, m.Literals, m.Failures, m.LiteralBytes)

	return r
}

// parseAll reads responses until the input ends
// and logs each of them. Literals are consumed and
// only their size is logged. It returns the number
// of responses read.
func parseAll(logger log.Logger, r imap.ResponseReader) (int, error) {

	n := 0

	for {

		resp, err := r.ReadResponse()
		if err == io.EOF {
			return n, nil
		}

		if err != nil {
			return n, err
		}

		for !resp.Completed() {

			if lit := resp.PendingLiteral(); lit != nil {

				size, err := io.Copy(ioutil.Discard, lit)
				if err != nil {
					return n, err
				}

				level.Debug(logger).Log("msg", "consumed literal", "bytes", size)
			}

			if _, err := r.Resume(resp); err != nil {
				return n, err
			}
		}

		n++

		level.Info(logger).Log(
			"msg", "response",
			"tag", resp.Tag,
			"continuation", resp.ContinuationRequest,
			"content", resp.String(),
		)

		if alert, ok := resp.AlertText(); ok {
			level.Warn(logger).Log("msg", "server alert", "alert", alert)
		}
	}
}

// run parses args, reads the transcript and
// returns the process exit code.
func run(args []string, stdin io.Reader) int {

	// Parse command-line flags.
	flags := flag.NewFlagSet("iemail-parse", flag.ContinueOnError)
	configFlag := flags.String("config", "", "Provide path to configuration file in TOML syntax.")
	envFlag := flags.String("env", "", "Provide path to a .env file overriding configuration values.")
	inputFlag := flags.String("input", "", "Path to a transcript of server responses. Reads from stdin if empty.")
	loglevelFlag := flags.String("loglevel", "", "This flag sets the logging level and overrides the config.")

	if err := flags.Parse(args); err != nil {
		return exitConfig
	}

	conf, err := loadConfig(*configFlag, *envFlag)
	if err != nil {
		level.Error(initLogger("error")).Log(
			"msg", "failed to load the config", "err", err,
		)
		return exitConfig
	}

	if *loglevelFlag != "" {
		conf.Log.Level = *loglevelFlag
	}

	logger := initLogger(conf.Log.Level)

	input := stdin

	if *inputFlag != "" {

		f, err := os.Open(*inputFlag)
		if err != nil {
			level.Error(logger).Log(
				"msg", "failed to open input transcript",
				"file", *inputFlag,
				"err", err,
			)
			return exitInput
		}
		defer f.Close()

		input = f
	}

	m := NewParserMetrics(conf.Metrics.PrometheusAddr)
	go runPromHTTP(logger, conf.Metrics.PrometheusAddr)

	n, err := parseAll(logger, newReader(logger, conf, m, input))
	if err != nil {
		level.Error(logger).Log(
			"msg", "failed to parse server responses",
			"responses", n,
			"err", err,
		)
		return exitParse
	}

	level.Info(logger).Log("msg", "finished parsing", "responses", n)

	return exitOK
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin))
}
