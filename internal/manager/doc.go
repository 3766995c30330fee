// Package manager wraps the webdriver-manager executable that installs the
// Selenium standalone server and browser drivers on non-Windows hosts.
//
// The executable is normally the one shipped with protractor:
//
//	node_modules/protractor/bin/webdriver-manager update --out_dir selenium
//
// # Usage
//
//	m := manager.New(setup.ManagerPath, executor.NewSystemExecutor(), 10*time.Minute)
//	if err := m.Update(ctx, "selenium"); err != nil {
//	    // PROCESS_SPAWN: the executable could not be started
//	    // PROCESS_EXIT: it exited non-zero or ran past the timeout;
//	    //               the error carries exit code, stdout and stderr
//	}
//
// Both output streams are buffered in memory for the lifetime of the
// process. webdriver-manager prints a few lines of progress, so this stays
// small.
//
// # Testing
//
// Pass an *executor.MockExecutor to New to script exit codes and output.
package manager
