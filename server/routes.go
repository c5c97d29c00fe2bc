package server

func (s *Server) initRoutes() {
	// Public routes
	s.RegisterRouteFunc("POST "+RouteUserRegister, ChainMiddleware(s.RegisterHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteUserLogin, ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteUserLogout, ChainMiddleware(s.LogoutHandler(), s.APIMiddleware()...))

	// Authenticated routes
	s.RegisterRouteFunc("PUT "+RouteUserProfile, ChainMiddleware(s.UpdateProfileHandler(), s.ProtectedMiddleware()...))
	s.RegisterRouteFunc("PUT "+RouteUserChangePassword, ChainMiddleware(s.ChangePasswordHandler(), s.ProtectedMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteTasks, ChainMiddleware(s.ListTasksHandler(), s.ProtectedMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteTaskByID, ChainMiddleware(s.GetTaskHandler(), s.ProtectedMiddleware()...))

	// Admin routes - RequireAdmin is always chained after RequireAuthenticated,
	// which installs the authorization context it relies on
	s.RegisterRouteFunc("GET "+RouteUserTeam, ChainMiddleware(s.TeamListHandler(), s.AdminMiddleware()...))
	s.RegisterRouteFunc("PUT "+RouteUserActivate, ChainMiddleware(s.ActivateUserHandler(), s.AdminMiddleware()...))
	s.RegisterRouteFunc("DELETE "+RouteUserByID, ChainMiddleware(s.DeleteUserHandler(), s.AdminMiddleware()...))

	s.RegisterRouteFunc("POST "+RouteTasks, ChainMiddleware(s.CreateTaskHandler(), s.AdminMiddleware()...))
	s.RegisterRouteFunc("PUT "+RouteTaskByID, ChainMiddleware(s.UpdateTaskHandler(), s.AdminMiddleware()...))
	s.RegisterRouteFunc("PUT "+RouteTaskTrash, ChainMiddleware(s.TrashTaskHandler(), s.AdminMiddleware()...))
	s.RegisterRouteFunc("PUT "+RouteTaskRestore, ChainMiddleware(s.RestoreTaskHandler(), s.AdminMiddleware()...))
	s.RegisterRouteFunc("DELETE "+RouteTaskByID, ChainMiddleware(s.DeleteTaskHandler(), s.AdminMiddleware()...))
}
