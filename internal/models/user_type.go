// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// UserType is the audience a question targets.
type UserType string

const (
	UserTypeBuyers     UserType = "buyers"
	UserTypeSellers    UserType = "sellers"
	UserTypeNRIs       UserType = "nris"
	UserTypeAgents     UserType = "agents"
	UserTypeHNIs       UserType = "hnis"
	UserTypeDevelopers UserType = "developers"
)

// UserTypeInfo describes a user type as shown in the filter bar.
type UserTypeInfo struct {
	ID   UserType `json:"id"`
	Name string   `json:"name"`
}

// UserTypes lists every user type in filter-bar order.
var UserTypes = []UserTypeInfo{
	{ID: UserTypeBuyers, Name: "Buyers"},
	{ID: UserTypeSellers, Name: "Sellers"},
	{ID: UserTypeNRIs, Name: "NRIs"},
	{ID: UserTypeAgents, Name: "Agents"},
	{ID: UserTypeHNIs, Name: "HNIs"},
	{ID: UserTypeDevelopers, Name: "Developers"},
}

// IsKnown reports whether u is one of the fixed user types.
func (u UserType) IsKnown() bool {
	for _, info := range UserTypes {
		if info.ID == u {
			return true
		}
	}
	return false
}

// Name returns the filter-bar name, or the capitalized raw value when unknown.
func (u UserType) Name() string {
	for _, info := range UserTypes {
		if info.ID == u {
			return info.Name
		}
	}
	return Capitalize(string(u))
}
