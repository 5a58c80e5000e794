package router

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Module is a feature slice that mounts its routes on the API group.
type Module interface {
	Name() string
	Register(rg *gin.RouterGroup)
}

// Registry collects modules and mounts them under a common prefix.
type Registry struct {
	Engine  *gin.Engine
	API     *gin.RouterGroup
	modules []Module
}

func NewRegistry(engine *gin.Engine, prefix string) *Registry {
	return &Registry{Engine: engine, API: engine.Group(prefix)}
}

func (r *Registry) Add(mods ...Module) {
	r.modules = append(r.modules, mods...)
}

// RegisterAll mounts every module in the order it was added and logs the
// resulting route table at debug level.
func (r *Registry) RegisterAll(logger *logrus.Logger) {
	for _, m := range r.modules {
		m.Register(r.API)
		if logger != nil {
			logger.WithField("module", m.Name()).Debug("module registered")
		}
	}
	if logger == nil {
		return
	}
	for _, rt := range r.Engine.Routes() {
		logger.WithFields(logrus.Fields{"method": rt.Method, "path": rt.Path}).Debug("route")
	}
}
