package models

type UserRole string

const RoleOrganizer UserRole = "organizer"
