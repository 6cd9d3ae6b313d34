// Copyright (c) 2026 Niramaya. All rights reserved.

package provider

import "context"

type Repository interface {
	CreateLink(context context.Context, link *Link) error
	FindLinkByID(context context.Context, id string) (*Link, error)
	FindLinkByPair(context context.Context, providerID, clientID string) (*Link, error)
	ListLinksByProvider(context context.Context, providerID string, status LinkStatus) ([]*Link, error)
	ListLinksByClient(context context.Context, clientID string) ([]*Link, error)
	UpdateStatus(context context.Context, id string, status LinkStatus) error
}
