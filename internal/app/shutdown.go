package app

import (
	"context"
	"fmt"
	"time"
)

// Shutdown performs graceful shutdown of all components.
// It stops the application in the following order:
//  1. Cancels the application context
//  2. Stops the maintenance sweeper (if running)
//  3. Stops the Telegram connector (if running)
//  4. Stops the metrics server (if running)
//  5. Stops the message bus
//
// The method is thread-safe and can be called from multiple goroutines.
func (a *App) Shutdown() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.shutdownInternal()
}

// Restart performs an internal application restart without terminating
// the process. Only one restart can be in progress at a time.
func (a *App) Restart() error {
	a.restartMutex.Lock()
	defer a.restartMutex.Unlock()

	a.logger.Info("Restarting application")

	if err := a.shutdownInternal(); err != nil {
		return fmt.Errorf("failed to shutdown: %w", err)
	}

	a.ctx, a.cancel = context.WithCancel(context.Background())

	if err := a.Initialize(a.ctx); err != nil {
		return fmt.Errorf("failed to reinitialize: %w", err)
	}

	if err := a.StartMessageProcessing(a.ctx); err != nil {
		return fmt.Errorf("failed to restart message processing: %w", err)
	}

	a.logger.Info("Application restarted successfully")
	return nil
}

// shutdownInternal performs shutdown without holding the mutex.
// This is used by Restart() which already holds the mutex.
func (a *App) shutdownInternal() error {
	if !a.started {
		return nil
	}

	a.cancel()

	if a.sweeper != nil {
		a.sweeper.Stop()
	}

	if a.telegram != nil {
		if err := a.telegram.Stop(); err != nil {
			a.logger.Error("Failed to stop telegram connector", err)
		}
	}

	if a.metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.metricsServer.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("Failed to stop metrics server", err)
		}
		cancel()
	}

	var busErr error
	if a.messageBus != nil {
		busErr = a.messageBus.Stop()
		if busErr != nil {
			a.logger.Error("Failed to stop message bus", busErr)
		}
	}

	a.started = false

	a.logger.Info("Application shutdown complete")

	return busErr
}
