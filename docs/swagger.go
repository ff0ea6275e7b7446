package docs

import "github.com/swaggo/swag"

// @title           NoteTo API
// @version         1.0
// @description     API for tasks, groups, team members, shared files and the social feed
// @termsOfService  http://swagger.io/terms/

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token

// @tag.name Users
// @tag.description Registration, login and profiles

// @tag.name Tasks
// @tag.description Task management operations

// @tag.name Groups
// @tag.description Task group operations

// @tag.name Team
// @tag.description Team member operations

// @tag.name Feed
// @tag.description Posts, comments and hashtags

// @tag.name Friends
// @tag.description Friend requests and the user directory

// @tag.name Files
// @tag.description Shared file metadata

var SwaggerInfo = &swag.Spec{
	Version:     "1.0",
	Host:        "localhost:8080",
	BasePath:    "/",
	Title:       "NoteTo API",
	Description: "API for tasks, groups, team members, shared files and the social feed",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
