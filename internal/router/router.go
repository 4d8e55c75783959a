package router

import (
	"time"

	"github.com/JPEDROPS092/sistemadecadastro/internal/config"
	"github.com/JPEDROPS092/sistemadecadastro/internal/handler"
	"github.com/JPEDROPS092/sistemadecadastro/internal/infra"
	"github.com/JPEDROPS092/sistemadecadastro/internal/middleware"
	"github.com/JPEDROPS092/sistemadecadastro/internal/model"
	"github.com/JPEDROPS092/sistemadecadastro/internal/repository"
	"github.com/JPEDROPS092/sistemadecadastro/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	denylist := infra.NewTokenDenylist(rdb)

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	produtoRepo := repository.NewProdutoRepository(db)
	movimentoRepo := repository.NewMovimentoRepository(db)
	caixaRepo := repository.NewCaixaRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, denylist, cfg)
	movimentoSvc := service.NewMovimentoService(produtoRepo, movimentoRepo)
	produtoSvc := service.NewProdutoService(produtoRepo)
	caixaSvc := service.NewCaixaService(caixaRepo)
	vendaSvc := service.NewVendaService(produtoRepo, movimentoRepo, caixaRepo)
	relatorioSvc := service.NewRelatorioService(produtoRepo, movimentoRepo, caixaRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	produtosH := handler.NewProdutosHandler(produtoSvc)
	movimentosH := handler.NewMovimentosHandler(movimentoSvc)
	caixaH := handler.NewCaixaHandler(caixaSvc)
	vendasH := handler.NewVendasHandler(vendaSvc)
	relatoriosH := handler.NewRelatoriosHandler(relatorioSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret, denylist)
	todos := middleware.RequireRole(model.TipoAdmin, model.TipoGerente, model.TipoOperador)
	gestao := middleware.RequireRole(model.TipoAdmin, model.TipoGerente)
	admin := middleware.RequireRole(model.TipoAdmin)

	v1 := r.Group("/v1", jwtMW)
	{
		v1.POST("/auth/logout", authH.Logout)
		v1.GET("/auth/perfil", authH.Perfil)
		v1.POST("/auth/alterar-senha", authH.AlterarSenha)

		// Catalog reads are open to every role; writes need gerente or admin.
		v1.GET("/produtos", todos, produtosH.Listar)
		v1.GET("/produtos/estoque-baixo", todos, produtosH.EstoqueBaixo)
		v1.GET("/produtos/:id", todos, produtosH.ObterPorID)
		prods := v1.Group("/produtos", gestao)
		{
			prods.POST("", produtosH.Criar)
			prods.PUT("/:id", produtosH.Atualizar)
			prods.DELETE("/:id", produtosH.Excluir)
			prods.POST("/:id/reativar", produtosH.Reativar)
			prods.POST("/:id/ajustar-estoque", movimentosH.AjustarEstoque)
		}

		v1.GET("/movimentos", todos, movimentosH.Listar)
		movs := v1.Group("/movimentos", gestao)
		{
			movs.POST("/entrada", movimentosH.RegistrarEntrada)
			movs.POST("/saida", movimentosH.RegistrarSaida)
		}

		caixa := v1.Group("/caixa")
		{
			caixa.POST("/abrir", todos, caixaH.Abrir)
			caixa.POST("/:id/fechar", todos, caixaH.Fechar)
			caixa.POST("/movimento", todos, caixaH.RegistrarMovimento)
			caixa.GET("/aberto", todos, caixaH.ObterAberto)
			caixa.GET("/historico", gestao, caixaH.Historico)
			caixa.GET("/:id", todos, caixaH.Obter)
		}

		v1.POST("/vendas", todos, vendasH.Registrar)

		rel := v1.Group("/relatorios", gestao)
		{
			rel.GET("/dashboard", relatoriosH.Dashboard)
			rel.GET("/estoque", relatoriosH.Estoque)
			rel.GET("/movimentos", relatoriosH.Movimentos)
			rel.GET("/fluxo-diario", relatoriosH.FluxoDiario)
			rel.GET("/caixa", relatoriosH.Caixa)
		}

		usuarios := v1.Group("/usuarios", admin)
		{
			usuarios.POST("", usuariosH.Criar)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Atualizar)
			usuarios.DELETE("/:id", usuariosH.Desativar)
			usuarios.POST("/:id/reativar", usuariosH.Reativar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
