// Package config provides configuration parsing for mwc servers.
//
// The configuration is stored in mwc.json in the working directory, or in
// mwc.yaml when there is no mwc.json. mwc.json may carry // and /* */
// comments and trailing commas. Every field is optional; environment
// variables override the file (MWC_PORT, MWC_HOST, MWC_LOG_LEVEL).
//
// # Configuration File Structure
//
//	{
//	  "title": "Demo",
//	  "port": 8080,
//	  "host": "localhost",
//	  "assets": {
//	    "dir": "./node_modules/@material/mwc-dialog",
//	    "manifest": "manifest.json",
//	    "prefix": "/_mwc/modules/"
//	  },
//	  "session": {
//	    "readTimeout": "60s",
//	    "writeTimeout": "10s",
//	    "heartbeatInterval": "30s",
//	    "maxMessageSize": 65536
//	  },
//	  "metrics": { "enabled": true, "path": "/metrics" },
//	  "log": { "level": "info", "format": "text" }
//	}
//
// Assets come either from a directory or from S3, never both:
//
//	"assets": {
//	  "s3": { "bucket": "ui-modules", "prefix": "mwc/", "region": "eu-west-1" }
//	}
//
// mwc.yaml uses the same keys:
//
//	title: Demo
//	assets:
//	  dir: dist
//	  manifest: manifest.json
//
// # Usage
//
//	cfg, err := config.LoadOrDefault(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	srvCfg, err := cfg.ServerConfig()
package config
