package repository

import "gotera/internal/graphql"

const memberFields = `
	id full_name phone email gender
	family_id role_id status_id profession_id location_id
	profession_name location_name
	family { id name }
	role { id name }
	status { id name }
	profession { id name }
	location { id name }
	ministries { id name }
	ledMinistries { id name }
	user { id phone role }
`

const credentialFields = `password user { id phone role }`

const meetupFields = `id family_id title description location meetup_date`

const attendanceFields = `id meetup_id member_id present note member { id full_name phone }`

const activityFields = `id actor action entity_type entity_id metadata created_at`

func op(name, document string) graphql.Operation {
	return graphql.Operation{Name: name, Document: document}
}

// Auth
var (
	OpLogin = op("Login", `mutation Login($phone: String!, $password: String!) {
	login(phone: $phone, password: $password) {
		token
		user { id phone role member {`+memberFields+`} }
	}
}`)
	OpLogout = op("Logout", `mutation Logout { logout }`)
)

// Members
var (
	OpGetMembers = op("GetMembers", `query GetMembers($page: Int, $limit: Int, $search: String, $status_id: ID, $family_id: ID, $profession_id: ID, $location_id: ID, $ministry_id: ID) {
	members(page: $page, limit: $limit, search: $search, status_id: $status_id, family_id: $family_id, profession_id: $profession_id, location_id: $location_id, ministry_id: $ministry_id) {
		items {`+memberFields+`}
		total page limit totalPages
	}
}`)
	OpGetMember = op("GetMember", `query GetMember($id: ID!) {
	member(id: $id) {`+memberFields+`}
}`)
	OpCreateMember = op("CreateMember", `mutation CreateMember($input: MemberInput!) {
	createMember(input: $input) {`+memberFields+`}
}`)
	OpUpdateMember = op("UpdateMember", `mutation UpdateMember($id: ID!, $input: MemberInput!) {
	updateMember(id: $id, input: $input) {`+memberFields+`}
}`)
	OpDeleteMember = op("DeleteMember", `mutation DeleteMember($id: ID!) { deleteMember(id: $id) }`)
	OpPromoteMember = op("PromoteMember", `mutation PromoteMember($member_id: ID!, $role: String!) {
	promoteMember(member_id: $member_id, role: $role) {`+credentialFields+`}
}`)
	OpPromoteMinistryLeader = op("PromoteMinistryLeader", `mutation PromoteMinistryLeader($member_id: ID!, $ministry_id: ID!) {
	promoteMinistryLeader(member_id: $member_id, ministry_id: $ministry_id) {`+credentialFields+`}
}`)
	OpResetPassword = op("ResetPassword", `mutation ResetPassword($user_id: ID!) {
	resetPassword(user_id: $user_id) {`+credentialFields+`}
}`)
	OpTransferMember = op("TransferMember", `mutation TransferMember($member_id: ID!, $family_id: ID!) {
	transferMember(member_id: $member_id, family_id: $family_id) {`+memberFields+`}
}`)
)

// Families
var (
	OpGetFamilies = op("GetFamilies", `query GetFamilies {
	families { id name description leader_id leader { id full_name phone } }
}`)
	OpGetFamilySummaries = op("GetFamilySummaries", `query GetFamilySummaries {
	familySummaries { id name leader_name member_count meetup_count }
}`)
	OpGetFamily = op("GetFamily", `query GetFamily($id: ID!) {
	family(id: $id) {
		id name description leader_id
		leader { id full_name phone }
		members {`+memberFields+`}
	}
}`)
	OpCreateFamily = op("CreateFamily", `mutation CreateFamily($input: FamilyInput!) {
	createFamily(input: $input) { id name description leader_id }
}`)
	OpUpdateFamily = op("UpdateFamily", `mutation UpdateFamily($id: ID!, $input: FamilyInput!) {
	updateFamily(id: $id, input: $input) { id name description leader_id }
}`)
	OpDeleteFamily = op("DeleteFamily", `mutation DeleteFamily($id: ID!) { deleteFamily(id: $id) }`)
)

// Ministries
var (
	OpGetMinistries = op("GetMinistries", `query GetMinistries {
	ministries { id name description leaders { id full_name } }
}`)
	OpGetMinistry = op("GetMinistry", `query GetMinistry($id: ID!) {
	ministry(id: $id) {
		id name description
		leaders { id full_name phone }
		members {`+memberFields+`}
	}
}`)
	OpCreateMinistry = op("CreateMinistry", `mutation CreateMinistry($input: MinistryInput!) {
	createMinistry(input: $input) { id name description }
}`)
	OpUpdateMinistry = op("UpdateMinistry", `mutation UpdateMinistry($id: ID!, $input: MinistryInput!) {
	updateMinistry(id: $id, input: $input) { id name description }
}`)
	OpDeleteMinistry = op("DeleteMinistry", `mutation DeleteMinistry($id: ID!) { deleteMinistry(id: $id) }`)
)

// Professions
var (
	OpGetProfessions = op("GetProfessions", `query GetProfessions { professions { id name } }`)
	OpGetProfession  = op("GetProfession", `query GetProfession($id: ID!) {
	profession(id: $id) { id name members { id full_name phone } }
}`)
	OpCreateProfession = op("CreateProfession", `mutation CreateProfession($input: ProfessionInput!) {
	createProfession(input: $input) { id name }
}`)
	OpUpdateProfession = op("UpdateProfession", `mutation UpdateProfession($id: ID!, $input: ProfessionInput!) {
	updateProfession(id: $id, input: $input) { id name }
}`)
	OpDeleteProfession = op("DeleteProfession", `mutation DeleteProfession($id: ID!) { deleteProfession(id: $id) }`)
)

// Locations
var (
	OpGetLocations = op("GetLocations", `query GetLocations { locations { id name } }`)
	OpGetLocation  = op("GetLocation", `query GetLocation($id: ID!) {
	location(id: $id) { id name members { id full_name phone } }
}`)
	OpCreateLocation = op("CreateLocation", `mutation CreateLocation($input: LocationInput!) {
	createLocation(input: $input) { id name }
}`)
	OpUpdateLocation = op("UpdateLocation", `mutation UpdateLocation($id: ID!, $input: LocationInput!) {
	updateLocation(id: $id, input: $input) { id name }
}`)
	OpDeleteLocation = op("DeleteLocation", `mutation DeleteLocation($id: ID!) { deleteLocation(id: $id) }`)
)

// Lookups and activity
var (
	OpGetStatuses   = op("GetStatuses", `query GetStatuses { statuses { id name } }`)
	OpGetRoles      = op("GetRoles", `query GetRoles { roles { id name } }`)
	OpGetActivities = op("GetActivities", `query GetActivities($page: Int, $limit: Int) {
	activities(page: $page, limit: $limit) {
		items {`+activityFields+`}
		total page limit totalPages
	}
}`)
)

// Meetups and attendance
var (
	OpGetFamilyMeetups = op("GetFamilyMeetups", `query GetFamilyMeetups($family_id: ID!) {
	familyMeetups(family_id: $family_id) {`+meetupFields+` attendances { id member_id present } }
}`)
	OpGetFamilyMeetup = op("GetFamilyMeetup", `query GetFamilyMeetup($id: ID!) {
	familyMeetup(id: $id) {`+meetupFields+` attendances {`+attendanceFields+`} }
}`)
	OpCreateFamilyMeetup = op("CreateFamilyMeetup", `mutation CreateFamilyMeetup($input: FamilyMeetupInput!) {
	createFamilyMeetup(input: $input) {`+meetupFields+`}
}`)
	OpUpdateFamilyMeetup = op("UpdateFamilyMeetup", `mutation UpdateFamilyMeetup($id: ID!, $input: FamilyMeetupInput!) {
	updateFamilyMeetup(id: $id, input: $input) {`+meetupFields+`}
}`)
	OpDeleteFamilyMeetup = op("DeleteFamilyMeetup", `mutation DeleteFamilyMeetup($id: ID!) { deleteFamilyMeetup(id: $id) }`)
	OpGetMeetupAttendances = op("GetMeetupAttendances", `query GetMeetupAttendances($meetup_id: ID!) {
	meetupAttendances(meetup_id: $meetup_id) {`+attendanceFields+`}
}`)
	OpCreateAttendances = op("CreateAttendances", `mutation CreateAttendances($meetup_id: ID!, $records: [AttendanceInput!]!) {
	createAttendances(meetup_id: $meetup_id, records: $records) { id meetup_id member_id present note }
}`)
)

// Catalog returns every operation the dashboard sends, keyed by name.
func Catalog() map[string]graphql.Operation {
	ops := []graphql.Operation{
		OpLogin, OpLogout,
		OpGetMembers, OpGetMember, OpCreateMember, OpUpdateMember, OpDeleteMember,
		OpPromoteMember, OpPromoteMinistryLeader, OpResetPassword, OpTransferMember,
		OpGetFamilies, OpGetFamilySummaries, OpGetFamily, OpCreateFamily, OpUpdateFamily, OpDeleteFamily,
		OpGetMinistries, OpGetMinistry, OpCreateMinistry, OpUpdateMinistry, OpDeleteMinistry,
		OpGetProfessions, OpGetProfession, OpCreateProfession, OpUpdateProfession, OpDeleteProfession,
		OpGetLocations, OpGetLocation, OpCreateLocation, OpUpdateLocation, OpDeleteLocation,
		OpGetStatuses, OpGetRoles, OpGetActivities,
		OpGetFamilyMeetups, OpGetFamilyMeetup, OpCreateFamilyMeetup, OpUpdateFamilyMeetup, OpDeleteFamilyMeetup,
		OpGetMeetupAttendances, OpCreateAttendances,
	}
	catalog := make(map[string]graphql.Operation, len(ops))
	for _, o := range ops {
		catalog[o.Name] = o
	}
	return catalog
}
