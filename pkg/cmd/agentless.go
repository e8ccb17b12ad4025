/*
Copyright 2026 David Arnold
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at
    http://www.apache.org/licenses/LICENSE-2.0
Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package cmd holds the agentless command line.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gitlab.com/davidxarnold/agentless/pkg/core"
	"gitlab.com/davidxarnold/agentless/pkg/qualys"
	"gitlab.com/davidxarnold/agentless/pkg/util"
	v "gitlab.com/davidxarnold/agentless/version"
)

var cfgFile string

// initConfig reads in config file, .env and ENV variables if set.
func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warnf("unable to read .env: %v", err)
	}

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			log.Warnf("unable to find home directory: %v", err)
		} else {
			// Search config in home directory with name ".agentless" (without extension).
			viper.AddConfigPath(home)
			viper.SetConfigName(".agentless")
		}
	}

	viper.SetEnvPrefix("AGENTLESS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	_ = viper.BindEnv("username", "QUALYS_USERNAME", "AGENTLESS_USERNAME")
	_ = viper.BindEnv("password", "QUALYS_PASSWORD", "AGENTLESS_PASSWORD")
	_ = viper.BindEnv("platform", "QUALYS_PLATFORM", "AGENTLESS_PLATFORM")

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.Println("Using config file:", viper.ConfigFileUsed())
	}
}

// NewAgentlessCmd provides a cobra command
func NewAgentlessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agentless",
		Short: "Report cloud VMs that have no cloud agent installed.",
		Long: "agentless queries the asset inventory of a Qualys platform for cloud virtual machines " +
			"that do not run a cloud agent and writes them to CSV and HTML reports.",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return util.SetupLogger()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := optionsFromConfig()
			if err != nil {
				return err
			}
			res, err := Run(cmd.Context(), opts)
			if err != nil {
				return err
			}
			renderSummary(cmd.OutOrStdout(), res, getTerminalWidth())
			return nil
		},
	}

	cmd.Version = v.Version

	f := cmd.Flags()
	f.StringP("username", "u", "", "Qualys username (env QUALYS_USERNAME)")
	f.StringP("password", "p", "", "Qualys password (env QUALYS_PASSWORD)")
	f.StringP("platform", "P", "", "Qualys platform, one of: "+strings.Join(qualys.PlatformNames(), ", "))
	f.StringP("cloud", "c", core.ProviderAWS.String(), "Cloud provider: AWS|AZURE|GCP")
	f.Int("hours", 0, "Only include assets created in the last N hours (0 = no filter)")
	f.Int("updated-hours", 0, "Only include assets updated in the last N hours (0 = no filter)")
	f.String("account-map", "", "JSON or YAML file mapping account ids to aliases")
	f.StringP("output", "o", DefaultOutputPrefix, "Output file prefix for the .csv and .html reports")
	f.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.agentless.yaml)")
	f.String("log-format", "text", "Log format: text|json")
	f.String("log-level", "info", "Log level: panic|fatal|error|warn|info|debug|trace")
	f.Bool("cloud-info", false, "Refresh state and instance type from the cloud provider APIs")
	f.Duration("cloud-cache-ttl", time.Hour, "How long cloud provider lookups are cached")
	f.Bool("cloud-cache-disk", false, "Persist the cloud lookup cache under $HOME/.agentless")
	f.Bool("aws-local-alias", false, "Add the IAM account alias of the local AWS credentials (AWS only)")

	cobra.OnInitialize(initConfig)

	_ = viper.BindPFlags(f)

	return cmd
}

// optionsFromConfig builds run options from flags, environment and config
// file and checks the required values.
func optionsFromConfig() (Options, error) {
	var missing []string
	for _, k := range []string{"username", "password", "platform"} {
		if strings.TrimSpace(viper.GetString(k)) == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return Options{}, fmt.Errorf("missing required value(s): %s", strings.Join(missing, ", "))
	}

	platform, err := qualys.LookupPlatform(viper.GetString("platform"))
	if err != nil {
		return Options{}, err
	}
	cloud, err := core.ParseCloudProvider(viper.GetString("cloud"))
	if err != nil {
		return Options{}, err
	}

	hours, updated := viper.GetInt("hours"), viper.GetInt("updated-hours")
	if hours < 0 || updated < 0 {
		return Options{}, fmt.Errorf("--hours and --updated-hours must not be negative")
	}

	output := viper.GetString("output")
	if output == "" {
		output = DefaultOutputPrefix
	}

	return Options{
		Platform:       platform,
		Username:       viper.GetString("username"),
		Password:       viper.GetString("password"),
		Cloud:          cloud,
		CreatedHours:   hours,
		UpdatedHours:   updated,
		AccountMapPath: viper.GetString("account-map"),
		OutputPrefix:   output,
		CloudInfo:      viper.GetBool("cloud-info"),
		CloudCacheTTL:  viper.GetDuration("cloud-cache-ttl"),
		CloudCacheDisk: viper.GetBool("cloud-cache-disk"),
		AWSLocalAlias:  viper.GetBool("aws-local-alias"),
	}, nil
}
