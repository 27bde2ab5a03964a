package backend

// WithRequestIDFunc is exported for testing
var WithRequestIDFunc = withRequestIDFunc
