// Package testutil ties test components to a test's lifetime.
//
//	func TestSend(t *testing.T) {
//	    srv := whispirtest.NewServer()
//	    testutil.T(t).Setup(srv)
//	    // srv is stopped when the test ends
//	}
package testutil
