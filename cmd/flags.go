package cmd

import (
	"time"

	"github.com/foomo/errorpages/pkg/locales"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func logLevelFlag(v *viper.Viper) string {
	return v.GetString("log.level")
}

func addLogLevelFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("log-level", "info", "log level")
	_ = v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = v.BindEnv("log.level", "LOG_LEVEL")
}

func logFormatFlag(v *viper.Viper) string {
	return v.GetString("log.format")
}

func addLogFormatFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("log-format", "json", "log format")
	_ = v.BindPFlag("log.format", flags.Lookup("log-format"))
	_ = v.BindEnv("log.format", "LOG_FORMAT")
}

func addressFlag(v *viper.Viper) string {
	return v.GetString("address")
}

func addAddressFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("address", ":8080", "Address to bind to (host:port)")
	_ = v.BindPFlag("address", flags.Lookup("address"))
	_ = v.BindEnv("address", "ERRORPAGES_ADDRESS")
}

func basePathFlag(v *viper.Viper) string {
	return v.GetString("base_path")
}

func addBasePathFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("base-path", "/", "Base path to serve the pages and strings on")
	_ = v.BindPFlag("base_path", flags.Lookup("base-path"))
	_ = v.BindEnv("base_path", "ERRORPAGES_BASE_PATH")
}

func stringsTargetFlag(v *viper.Viper) string {
	return v.GetString("strings.target")
}

func addStringsTargetFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("strings-target", "strings", "Directory or bucket URL (gs://, s3://, azblob://, mem://, file://) holding the locale bundles")
	_ = v.BindPFlag("strings.target", flags.Lookup("strings-target"))
	_ = v.BindEnv("strings.target", "ERRORPAGES_STRINGS_TARGET")
}

func stringsPrefixFlag(v *viper.Viper) string {
	return v.GetString("strings.prefix")
}

func addStringsPrefixFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("strings-prefix", "", "Key prefix of the locale bundles inside the bucket")
	_ = v.BindPFlag("strings.prefix", flags.Lookup("strings-prefix"))
	_ = v.BindEnv("strings.prefix", "ERRORPAGES_STRINGS_PREFIX")
}

func stringsURLFlag(v *viper.Viper) string {
	return v.GetString("strings.url")
}

func addStringsURLFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("strings-url", "", "Fetch the bundle from this URL instead of the strings target")
	_ = v.BindPFlag("strings.url", flags.Lookup("strings-url"))
	_ = v.BindEnv("strings.url", "ERRORPAGES_STRINGS_URL")
}

func stringsTimeoutFlag(v *viper.Viper) time.Duration {
	return v.GetDuration("strings.timeout")
}

func addStringsTimeoutFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.Duration("strings-timeout", 2*time.Second, "Timeout of remote bundle requests")
	_ = v.BindPFlag("strings.timeout", flags.Lookup("strings-timeout"))
	_ = v.BindEnv("strings.timeout", "ERRORPAGES_STRINGS_TIMEOUT")
}

func defaultLocaleFlag(v *viper.Viper) string {
	return v.GetString("default_locale")
}

func addDefaultLocaleFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("default-locale", locales.DefaultLocale, "Locale served when none matches")
	_ = v.BindPFlag("default_locale", flags.Lookup("default-locale"))
	_ = v.BindEnv("default_locale", "ERRORPAGES_DEFAULT_LOCALE")
}

func templateFlag(v *viper.Viper) string {
	return v.GetString("template")
}

func addTemplateFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("template", "", "Page template file, defaults to the built-in page")
	_ = v.BindPFlag("template", flags.Lookup("template"))
	_ = v.BindEnv("template", "ERRORPAGES_TEMPLATE")
}

func acceptLanguageFlag(v *viper.Viper) string {
	return v.GetString("accept_language")
}

func addAcceptLanguageFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("accept-language", "", "Accept-Language used to pick the bundle")
	_ = v.BindPFlag("accept_language", flags.Lookup("accept-language"))
}

func gzipLevelFlag(v *viper.Viper) int {
	return v.GetInt("gzip_level")
}

func addGzipLevelFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.Int("gzip-level", 5, "Compression level of responses")
	_ = v.BindPFlag("gzip_level", flags.Lookup("gzip-level"))
	_ = v.BindEnv("gzip_level", "ERRORPAGES_GZIP_LEVEL")
}

func outputPrefixFlag(v *viper.Viper) string {
	return v.GetString("output.prefix")
}

func addOutputPrefixFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("output-prefix", "", "Key prefix of the generated pages inside the bucket")
	_ = v.BindPFlag("output.prefix", flags.Lookup("output-prefix"))
	_ = v.BindEnv("output.prefix", "ERRORPAGES_OUTPUT_PREFIX")
}

func codesFlag(v *viper.Viper) []string {
	return v.GetStringSlice("codes")
}

func addCodesFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.StringSlice("codes", nil, "Codes to generate, defaults to every known code")
	_ = v.BindPFlag("codes", flags.Lookup("codes"))
	_ = v.BindEnv("codes", "ERRORPAGES_CODES")
}

func localesFlag(v *viper.Viper) []string {
	return v.GetStringSlice("locales")
}

func addLocalesFlag(flags *pflag.FlagSet, v *viper.Viper, usage string, value []string) {
	flags.StringSlice("locales", value, usage)
	_ = v.BindPFlag("locales", flags.Lookup("locales"))
	_ = v.BindEnv("locales", "ERRORPAGES_LOCALES")
}

func concurrencyFlag(v *viper.Viper) int {
	return v.GetInt("concurrency")
}

func addConcurrencyFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.Int("concurrency", 4, "Number of pages rendered in parallel")
	_ = v.BindPFlag("concurrency", flags.Lookup("concurrency"))
	_ = v.BindEnv("concurrency", "ERRORPAGES_CONCURRENCY")
}

func pruneFlag(v *viper.Viper) bool {
	return v.GetBool("prune")
}

func addPruneFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.Bool("prune", false, "Delete pages that were not generated by this run")
	_ = v.BindPFlag("prune", flags.Lookup("prune"))
	_ = v.BindEnv("prune", "ERRORPAGES_PRUNE")
}

func serviceHealthzEnabledFlag(v *viper.Viper) bool {
	return v.GetBool("service.healthz.enabled")
}

func addServiceHealthzEnabledFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.Bool("service-healthz-enabled", false, "Enable healthz service")
	_ = v.BindPFlag("service.healthz.enabled", flags.Lookup("service-healthz-enabled"))
}

func servicePrometheusEnabledFlag(v *viper.Viper) bool {
	return v.GetBool("service.prometheus.enabled")
}

func addServicePrometheusEnabledFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.Bool("service-prometheus-enabled", false, "Enable prometheus service")
	_ = v.BindPFlag("service.prometheus.enabled", flags.Lookup("service-prometheus-enabled"))
}

func otelEnabledFlag(v *viper.Viper) bool {
	return v.GetBool("otel.enabled")
}

func addOtelEnabledFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.Bool("otel-enabled", false, "Enable otel service")
	_ = v.BindPFlag("otel.enabled", flags.Lookup("otel-enabled"))
	_ = v.BindEnv("otel.enabled", "OTEL_ENABLED")
}
