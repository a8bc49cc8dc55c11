// Package config loads berconv settings.
//
// Settings come from, in increasing precedence: DefaultConfig, a YAML file
// read with LoadConfig, BERCONV_* environment variables applied by ApplyEnv,
// and command-line flags. The file may reference the environment with
// ${VAR} or ${VAR:-default}:
//
//	codec:
//	  dialect: ${BER_DIALECT:-strict}
//	  input: hex
//	  output: base64
//	logging:
//	  level: debug
//	  format: json
//	  output: stderr
package config
