// toolkit/windowsservice/programwindows.go
//go:build windows

package windowsservice

import (
	"context"

	"github.com/kardianos/service"

	"github.com/salihkiraz/lumen-theme/app"
)

// Program wraps app.Run so it can be driven by the Windows Service
// Control Manager (SCM).
type Program struct {
	cancel func()
}

// Start is called by the SCM when the service is started.
func (p *Program) Start(s service.Service) error {
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel

	// Run the app in a goroutine so Start can return quickly.
	go func() {
		_ = app.Run(ctx)
	}()

	return nil
}

// Stop is called by the SCM when the service is stopped.
func (p *Program) Stop(s service.Service) error {
	if p.cancel != nil {
		p.cancel() // triggers graceful shutdown inside app + server
	}
	return nil
}

// Interactive reports whether the process was started from a console
// rather than by the SCM.
func Interactive() bool {
	return service.Interactive()
}

// Run registers the program with the SCM and blocks until the service
// is stopped.
func Run(name, displayName, description string) error {
	svc, err := service.New(&Program{}, &service.Config{
		Name:        name,
		DisplayName: displayName,
		Description: description,
	})
	if err != nil {
		return err
	}
	return svc.Run()
}
