// Command recorderctl is the command line client for the cloud recording
// service. It signs requests with the browser session's SAPISID cookie, so a
// Chrome instance with remote debugging enabled stands in for a login flow.
package main
