package graph

import (
	"time"

	"github.com/graphql-go/graphql"

	"github.com/jxnhiro/blog-api/internal/auth"
	"github.com/jxnhiro/blog-api/internal/model"
	"github.com/jxnhiro/blog-api/internal/service"
)

// Resolver carries the services the GraphQL surface is a thin adapter over.
type Resolver struct {
	authService service.AuthService
	feedService service.FeedService
}

// NewSchema builds the GraphQL schema mirroring the REST operations.
func NewSchema(authService service.AuthService, feedService service.FeedService) (graphql.Schema, error) {
	r := &Resolver{
		authService: authService,
		feedService: feedService,
	}

	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"_id":    &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"email":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"status": &graphql.Field{Type: graphql.String},
			"posts":  &graphql.Field{Type: graphql.NewList(graphql.ID)},
		},
	})

	postType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Post",
		Fields: graphql.Fields{
			"_id":       &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"title":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"content":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"imageUrl":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"creator":   &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"updatedAt": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	creatorType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Creator",
		Fields: graphql.Fields{
			"_id":  &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	createdPostType := graphql.NewObject(graphql.ObjectConfig{
		Name: "CreatedPost",
		Fields: graphql.Fields{
			"post":    &graphql.Field{Type: graphql.NewNonNull(postType)},
			"creator": &graphql.Field{Type: graphql.NewNonNull(creatorType)},
		},
	})

	authDataType := graphql.NewObject(graphql.ObjectConfig{
		Name: "AuthData",
		Fields: graphql.Fields{
			"token":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"userId": &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		},
	})

	postsDataType := graphql.NewObject(graphql.ObjectConfig{
		Name: "PostsData",
		Fields: graphql.Fields{
			"posts":      &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(postType))},
			"totalItems": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		},
	})

	userInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UserInputData",
		Fields: graphql.InputObjectConfigFieldMap{
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"name":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	postInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "PostInputData",
		Fields: graphql.InputObjectConfigFieldMap{
			"title":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"content":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"imageUrl": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "RootQuery",
		Fields: graphql.Fields{
			"login": &graphql.Field{
				Type: graphql.NewNonNull(authDataType),
				Args: graphql.FieldConfigArgument{
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.login,
			},
			"posts": &graphql.Field{
				Type: graphql.NewNonNull(postsDataType),
				Args: graphql.FieldConfigArgument{
					"page": &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: r.posts,
			},
			"post": &graphql.Field{
				Type: graphql.NewNonNull(postType),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.post,
			},
			"status": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.String),
				Resolve: r.status,
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "RootMutation",
		Fields: graphql.Fields{
			"createUser": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Args: graphql.FieldConfigArgument{
					"userInput": &graphql.ArgumentConfig{Type: graphql.NewNonNull(userInputType)},
				},
				Resolve: r.createUser,
			},
			"createPost": &graphql.Field{
				Type: graphql.NewNonNull(createdPostType),
				Args: graphql.FieldConfigArgument{
					"postInput": &graphql.ArgumentConfig{Type: graphql.NewNonNull(postInputType)},
				},
				Resolve: r.createPost,
			},
			"updatePost": &graphql.Field{
				Type: graphql.NewNonNull(postType),
				Args: graphql.FieldConfigArgument{
					"id":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"postInput": &graphql.ArgumentConfig{Type: graphql.NewNonNull(postInputType)},
				},
				Resolve: r.updatePost,
			},
			"deletePost": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.deletePost,
			},
			"updateStatus": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Args: graphql.FieldConfigArgument{
					"status": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.updateStatus,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

func (r *Resolver) createUser(p graphql.ResolveParams) (interface{}, error) {
	input, _ := p.Args["userInput"].(map[string]interface{})
	email, _ := input["email"].(string)
	name, _ := input["name"].(string)
	password, _ := input["password"].(string)

	user, err := r.authService.Signup(p.Context, email, password, name)
	if err != nil {
		return nil, err
	}
	return userPayload(user), nil
}

func (r *Resolver) login(p graphql.ResolveParams) (interface{}, error) {
	email, _ := p.Args["email"].(string)
	password, _ := p.Args["password"].(string)

	token, userID, err := r.authService.Login(p.Context, email, password)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"token":  token,
		"userId": userID,
	}, nil
}

func (r *Resolver) posts(p graphql.ResolveParams) (interface{}, error) {
	page := 1
	if n, ok := p.Args["page"].(int); ok {
		page = n
	}

	posts, totalItems, err := r.feedService.GetPosts(p.Context, page)
	if err != nil {
		return nil, err
	}

	items := make([]interface{}, 0, len(posts))
	for i := range posts {
		items = append(items, postPayload(&posts[i]))
	}
	return map[string]interface{}{
		"posts":      items,
		"totalItems": int(totalItems),
	}, nil
}

func (r *Resolver) post(p graphql.ResolveParams) (interface{}, error) {
	id, _ := p.Args["id"].(string)

	post, err := r.feedService.GetPost(p.Context, id)
	if err != nil {
		return nil, err
	}
	return postPayload(post), nil
}

func (r *Resolver) status(p graphql.ResolveParams) (interface{}, error) {
	userID, _ := auth.UserIDFromContext(p.Context)
	return r.feedService.GetStatus(p.Context, userID)
}

func (r *Resolver) createPost(p graphql.ResolveParams) (interface{}, error) {
	userID, _ := auth.UserIDFromContext(p.Context)
	input, _ := p.Args["postInput"].(map[string]interface{})
	title, _ := input["title"].(string)
	content, _ := input["content"].(string)
	imageURL, _ := input["imageUrl"].(string)

	post, creator, err := r.feedService.CreatePost(p.Context, userID, title, content, imageURL)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"post": postPayload(post),
		"creator": map[string]interface{}{
			"_id":  creator.ID.Hex(),
			"name": creator.Name,
		},
	}, nil
}

func (r *Resolver) updatePost(p graphql.ResolveParams) (interface{}, error) {
	userID, _ := auth.UserIDFromContext(p.Context)
	id, _ := p.Args["id"].(string)
	input, _ := p.Args["postInput"].(map[string]interface{})
	title, _ := input["title"].(string)
	content, _ := input["content"].(string)
	imageURL, _ := input["imageUrl"].(string)

	post, err := r.feedService.UpdatePost(p.Context, userID, id, title, content, imageURL)
	if err != nil {
		return nil, err
	}
	return postPayload(post), nil
}

func (r *Resolver) deletePost(p graphql.ResolveParams) (interface{}, error) {
	userID, _ := auth.UserIDFromContext(p.Context)
	id, _ := p.Args["id"].(string)

	if err := r.feedService.DeletePost(p.Context, userID, id); err != nil {
		return nil, err
	}
	return true, nil
}

func (r *Resolver) updateStatus(p graphql.ResolveParams) (interface{}, error) {
	userID, _ := auth.UserIDFromContext(p.Context)
	status, _ := p.Args["status"].(string)

	return r.feedService.UpdateStatus(p.Context, userID, status)
}

func userPayload(user *model.User) map[string]interface{} {
	posts := make([]interface{}, 0, len(user.Posts))
	for _, id := range user.Posts {
		posts = append(posts, id.Hex())
	}
	return map[string]interface{}{
		"_id":    user.ID.Hex(),
		"name":   user.Name,
		"email":  user.Email,
		"status": user.Status,
		"posts":  posts,
	}
}

func postPayload(post *model.Post) map[string]interface{} {
	return map[string]interface{}{
		"_id":       post.ID.Hex(),
		"title":     post.Title,
		"content":   post.Content,
		"imageUrl":  post.ImageURL,
		"creator":   post.Creator.Hex(),
		"createdAt": post.CreatedAt.Format(time.RFC3339),
		"updatedAt": post.UpdatedAt.Format(time.RFC3339),
	}
}
