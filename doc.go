// Package enginedriver runs a game engine as a child process and talks to it
// over its standard streams.
//
// The driver writes line-oriented text commands to the engine's stdin in the
// order they were issued, publishes every stdout and stderr line as an event,
// watches stderr for error reports, and shuts the engine down when asked or
// when something goes wrong. It also performs the engine's prepare handshake
// and the command sequences that join a parallel search server or a mate
// solver server.
//
// # Basic Usage
//
//	d := enginedriver.New(
//	    enginedriver.WithLogger(slog.Default()),
//	    enginedriver.WithOnReceived(func(l enginedriver.Line) {
//	        fmt.Println("engine:", l.Text)
//	    }),
//	    enginedriver.WithOnAborted(func(a enginedriver.AbortedEvent) {
//	        fmt.Println("stopped:", a.Reason)
//	    }),
//	)
//	defer d.Close()
//
//	if err := d.Initialize(ctx, "/opt/bonanza/bonanza"); err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := d.Prepare(15, 42); err != nil {
//	    log.Fatal(err)
//	}
//
// Once the handshake event reports Ready, Connect queues the setup commands
// for a parallel search server:
//
//	err := d.Connect(enginedriver.ServerConfig{
//	    Address:     "mnj.example.org",
//	    Port:        4082,
//	    AuxPort:     4083,
//	    Name:        "node_01",
//	    ThreadCount: 4,
//	    HashSize:    22,
//	    Depth:       18,
//	})
//
// # Events
//
// Listeners receive five kinds of events: received (stdout lines), sent
// (commands written), error (stderr lines), handshake (the prepare outcome),
// and aborted (raised exactly once). Register them with the WithOn* options
// or Driver.Subscribe. They are called on the driver's goroutines; a
// listener may call Abort.
//
// # Shutdown
//
// Abort writes "quit", waits for the engine to exit, and kills it when the
// abort timeout passes. The driver aborts on its own when the engine exits,
// when it prints an "ERROR: " or "WARNING: " line on stderr, or when a
// stdin write fails. Stderr lines announcing a missing data file abort with
// FatalError, which a host should not retry.
//
// # Error Handling
//
//	if err := d.Initialize(ctx, path); err != nil {
//	    if nf, ok := errors.AsType[*enginedriver.EngineNotFoundError](err); ok {
//	        log.Fatalf("no engine at %s", nf.Path)
//	    }
//	    log.Fatal(err)
//	}
package enginedriver
