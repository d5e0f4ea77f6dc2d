package cmd

import (
	"prodtrack/internal/adapters/out/postgres"
	"prodtrack/internal/core/application/usecases/commands"
	"prodtrack/internal/core/application/usecases/queries"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
	}
}

func (c *CompositionRoot) CreateTransitionItemStageCommandHandler() commands.TransitionItemStageCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionItemStageCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateMeasurementsCommandHandler() commands.UpdateMeasurementsCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateMeasurementsCommandHandler(f)
}

func (c *CompositionRoot) CreateDeleteAccountCommandHandler() commands.DeleteAccountCommandHandler {
	var f commands.AccountUoWFactory = FuncAccountUoWFactory(func() commands.AccountUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeleteAccountCommandHandler(f)
}

func (c *CompositionRoot) CreateGetFirstPassYieldQueryHandler() queries.GetFirstPassYieldQueryHandler {
	return queries.NewGetFirstPassYieldQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStageDistributionQueryHandler() queries.GetStageDistributionQueryHandler {
	return queries.NewGetStageDistributionQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCompletionTimeQueryHandler() queries.GetCompletionTimeQueryHandler {
	return queries.NewGetCompletionTimeQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetThroughputQueryHandler() queries.GetThroughputQueryHandler {
	return queries.NewGetThroughputQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetSalesQueryHandler() queries.GetSalesQueryHandler {
	return queries.NewGetSalesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetItemRegressionsQueryHandler() queries.GetItemRegressionsQueryHandler {
	return queries.NewGetItemRegressionsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAuditHistoryQueryHandler() queries.GetAuditHistoryQueryHandler {
	return queries.NewGetAuditHistoryQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncAccountUoWFactory func() commands.AccountUoW

func (f FuncAccountUoWFactory) Create() commands.AccountUoW {
	return f()
}
