// Package config resolves the settings of one selenium-install run.
//
// Settings come in layers, lowest first:
//
//  1. built-in defaults (Builtin): webdriver-manager under node_modules,
//     install directory "selenium", no downloads, 10 minute manager timeout
//  2. platform defaults (PlatformDefaults): on Windows only, the fixed URLs
//     of the standalone server jar, IEDriverServer and chromedriver archives
//  3. the YAML configuration file (Load)
//  4. command-line flags
//
// Resolve folds the layers into a Setup exactly once per run. A Setup hands
// out copies of its download map, so nothing downstream can change it.
//
// Example config.yaml (default location ~/.config/selenium-install/config.yaml):
//
//	manager_path: ~/project/node_modules/protractor/bin/webdriver-manager
//	install_dir: selenium
//	manager_timeout: 5m
//	downloads:
//	  selenium: http://selenium-release.storage.googleapis.com/2.40/selenium-server-standalone-2.40.0.jar
//	  ieDriver: ""   # skip the IE driver even on Windows
//
// A leading ~ in manager_path, install_dir or the --config path is expanded
// to the user's home directory.
package config
