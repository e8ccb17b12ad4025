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

package util

import (
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// SetupLogger sets configuration for the default logger from viper's
// "log-format" and "log-level" keys. Logs go to stdout.
func SetupLogger() (err error) {
	var (
		lf = strings.ToLower(viper.GetString("log-format"))
		ll = viper.GetString("log-level")
	)

	log.SetOutput(os.Stdout)

	// Set log format
	switch lf {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		log.SetFormatter(&log.TextFormatter{
			DisableLevelTruncation: true,
		})
	}

	if ll == "" {
		log.SetLevel(log.InfoLevel)
		return nil
	}
	level, err := log.ParseLevel(ll)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", ll, err)
	}
	log.SetLevel(level)
	return nil
}

// ParseProviderID returns the cloud provider and associated info of an id
// such as "aws:///us-east-1/i-0abc". An id without a scheme is returned as
// the provider with no parts.
func ParseProviderID(pi string) (cp string, id []string) {
	s := strings.SplitN(pi, ":", 2)
	if len(s) < 2 {
		return s[0], nil
	}
	return s[0], strings.Split(strings.TrimPrefix(s[1], "//"), "/")
}

// FormatProviderID is the inverse of ParseProviderID.
func FormatProviderID(cp string, parts ...string) string {
	return cp + "://" + strings.Join(parts, "/")
}
