package cli

// RunWithWriter runs the application with stdout redirected to w
var RunWithWriter = run
