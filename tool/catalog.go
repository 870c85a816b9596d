package tool

// Catalog returns the gateway's tool descriptors in listing order.
// Canonical names are dotted; each carries the flat legacy alias that
// earlier clients used.
func Catalog() []Descriptor {
	return []Descriptor{
		{
			Name:    "rationsmart.countries.list",
			Title:   "List Countries",
			Aliases: []string{"get_countries"},
			Description: "List supported countries for onboarding (id, name, currency).\n" +
				"Use when the user needs to select or confirm their country.\n" +
				"Read-only.\n" +
				"Returns all active countries.",
		},
		{
			Name:    "rationsmart.breeds.list",
			Title:   "List Breeds",
			Aliases: []string{"get_breeds"},
			Description: "List cattle breeds available for a country.\n" +
				"Use after the user selects a country to show breed options.\n" +
				"Read-only.\n" +
				"Requires a valid country_id.",
			Args: []Arg{
				{Name: "country_id", Type: ArgString, Description: "The country UUID from get_countries", Required: true},
			},
		},
		{
			Name:    "rationsmart.location.resolve",
			Title:   "Resolve Location",
			Aliases: []string{"resolve_location"},
			Description: "Resolve country and region from latitude/longitude via backend geocoding.\n" +
				"Use when you only have GPS coordinates.\n" +
				"Read-only (calls external geocoding).\n" +
				"Requires latitude and longitude.",
			Args: []Arg{
				{Name: "latitude", Type: ArgNumber, Description: "Latitude", Required: true},
				{Name: "longitude", Type: ArgNumber, Description: "Longitude", Required: true},
			},
		},
		{
			Name:    "rationsmart.countries.resolve",
			Title:   "Resolve Country ID",
			Aliases: []string{"resolve_country_id"},
			Description: "Resolve backend country_id from country code/name or latitude/longitude.\n" +
				"Use before diet generation when you do not have a country_id.\n" +
				"Read-only.\n" +
				"Falls back to the first active country if no match is found.",
			Args: []Arg{
				{Name: "country_code", Type: ArgString, Description: "ISO country code (2 or 3 letters)"},
				{Name: "country_name", Type: ArgString, Description: "Country name"},
				{Name: "latitude", Type: ArgNumber, Description: "Latitude"},
				{Name: "longitude", Type: ArgNumber, Description: "Longitude"},
			},
		},
		{
			Name:    "rationsmart.cows.create",
			Title:   "Create Cow Profile",
			Aliases: []string{"create_cow"},
			Description: "Create a new cow profile for a farmer.\n" +
				"Use when onboarding a cow for diet planning.\n" +
				"Writes to the database.\n" +
				"Requires device_id and name.",
			Args: []Arg{
				{Name: "device_id", Type: ArgString, Description: "Unique device/user identifier for the farmer", Required: true},
				{Name: "name", Type: ArgString, Description: "Name of the cow (e.g., 'Lakshmi', 'Ganga')", Required: true},
				{Name: "breed", Type: ArgString, Description: "Breed of the cow"},
				{Name: "body_weight", Type: ArgNumber, Description: "Body weight in kg (typically 300-600 kg)", Default: 400},
				{Name: "lactating", Type: ArgBoolean, Description: "Is the cow currently lactating?", Default: true},
				{Name: "milk_production", Type: ArgNumber, Description: "Current daily milk production in liters", Default: 10},
				{Name: "target_milk_yield", Type: ArgNumber, Description: "Target milk yield in liters/day (optional)"},
				{Name: "days_in_milk", Type: ArgInteger, Description: "Days since calving", Default: 100},
				{Name: "parity", Type: ArgInteger, Description: "Number of times the cow has calved", Default: 2},
				{Name: "days_of_pregnancy", Type: ArgInteger, Description: "Days of pregnancy (0 if not pregnant)", Default: 0},
			},
		},
		{
			Name:    "rationsmart.cows.list",
			Title:   "List Cow Profiles",
			Aliases: []string{"list_cows"},
			Description: "List cow profiles for a farmer.\n" +
				"Use when showing the farmer's herd or selecting a cow.\n" +
				"Read-only.\n" +
				"Requires device_id.",
			Args: []Arg{
				{Name: "device_id", Type: ArgString, Description: "Unique device/user identifier for the farmer", Required: true},
				{Name: "include_inactive", Type: ArgBoolean, Description: "Include deactivated cow profiles", Default: false},
			},
		},
		{
			Name:    "rationsmart.cows.get",
			Title:   "Get Cow Details",
			Aliases: []string{"get_cow"},
			Description: "Get details for a specific cow profile.\n" +
				"Use when viewing or editing a cow.\n" +
				"Read-only.\n" +
				"Requires device_id and cow_id.",
			Args: []Arg{
				{Name: "device_id", Type: ArgString, Description: "Unique device/user identifier", Required: true},
				{Name: "cow_id", Type: ArgString, Description: "The cow's unique ID", Required: true},
			},
		},
		{
			Name:    "rationsmart.cows.update",
			Title:   "Update Cow Profile",
			Aliases: []string{"update_cow"},
			Description: "Update fields on a cow profile.\n" +
				"Use when the farmer edits weight, milk, or status.\n" +
				"Writes to the database.\n" +
				"Requires device_id and cow_id; send only changed fields.",
			Args: []Arg{
				{Name: "device_id", Type: ArgString, Description: "Unique device/user identifier", Required: true},
				{Name: "cow_id", Type: ArgString, Description: "The cow's unique ID", Required: true},
				{Name: "name", Type: ArgString},
				{Name: "body_weight", Type: ArgNumber},
				{Name: "milk_production", Type: ArgNumber},
				{Name: "target_milk_yield", Type: ArgNumber},
				{Name: "lactating", Type: ArgBoolean},
				{Name: "days_in_milk", Type: ArgInteger},
				{Name: "parity", Type: ArgInteger},
				{Name: "days_of_pregnancy", Type: ArgInteger},
			},
		},
		{
			Name:    "rationsmart.cows.delete",
			Title:   "Delete Cow Profile",
			Aliases: []string{"delete_cow"},
			Description: "Delete or deactivate a cow profile.\n" +
				"Use when the farmer removes a cow.\n" +
				"Writes to the database; can be permanent.\n" +
				"Requires device_id and cow_id.",
			Args: []Arg{
				{Name: "device_id", Type: ArgString, Description: "Unique device/user identifier", Required: true},
				{Name: "cow_id", Type: ArgString, Description: "The cow's unique ID", Required: true},
				{Name: "permanent", Type: ArgBoolean, Description: "Permanently delete?", Default: false},
			},
		},
		{
			Name:    "rationsmart.diets.generate",
			Title:   "Generate Diet",
			Aliases: []string{"generate_diet"},
			Description: "Generate a diet recommendation for a cow.\n" +
				"Use after cow details and a country are known.\n" +
				"Writes a diet record if save_diet is true.\n" +
				"Requires device_id, cow_id, and a country (id/code or lat/long).",
			Args: []Arg{
				{Name: "device_id", Type: ArgString, Description: "Unique device/user identifier", Required: true},
				{Name: "cow_id", Type: ArgString, Description: "The cow's unique ID", Required: true},
				{Name: "country_id", Type: ArgString, Description: "Country ID for feed availability"},
				{Name: "country_code", Type: ArgString, Description: "ISO country code (2 or 3 letters)"},
				{Name: "country_name", Type: ArgString, Description: "Country name"},
				{Name: "latitude", Type: ArgNumber, Description: "Latitude"},
				{Name: "longitude", Type: ArgNumber, Description: "Longitude"},
				{Name: "save_diet", Type: ArgBoolean, Description: "Save for later reference", Default: true},
			},
		},
		{
			Name:    "rationsmart.diets.schedule.get",
			Title:   "Get Diet Schedule",
			Aliases: []string{"get_diet_schedule"},
			Description: "Get the active diet feeding schedule for a cow.\n" +
				"Use when showing morning/evening instructions.\n" +
				"Read-only.\n" +
				"Requires device_id and cow_id.",
			Args: []Arg{
				{Name: "device_id", Type: ArgString, Description: "Unique device/user identifier", Required: true},
				{Name: "cow_id", Type: ArgString, Description: "The cow's unique ID", Required: true},
			},
		},
		{
			Name:    "rationsmart.diets.history.list",
			Title:   "List Diet History",
			Aliases: []string{"get_diet_history"},
			Description: "List diet history for a farmer (optionally per cow).\n" +
				"Use when showing past diets or analytics.\n" +
				"Read-only.\n" +
				"Requires device_id.",
			Args: []Arg{
				{Name: "device_id", Type: ArgString, Description: "Unique device/user identifier", Required: true},
				{Name: "cow_id", Type: ArgString, Description: "Optional: filter to specific cow"},
			},
		},
		{
			Name:    "rationsmart.diets.follow",
			Title:   "Follow Diet",
			Aliases: []string{"follow_diet"},
			Description: "Mark a diet as actively followed.\n" +
				"Use when the farmer starts a plan.\n" +
				"Writes to the database and enables reminders.\n" +
				"Requires device_id and diet_id.",
			Args: []Arg{
				{Name: "device_id", Type: ArgString, Description: "Unique device/user identifier", Required: true},
				{Name: "diet_id", Type: ArgString, Description: "The diet's unique ID", Required: true},
			},
		},
		{
			Name:    "rationsmart.diets.unfollow",
			Title:   "Stop Following Diet",
			Aliases: []string{"stop_following_diet"},
			Description: "Stop following a diet.\n" +
				"Use when the farmer ends a plan.\n" +
				"Writes to the database.\n" +
				"Requires device_id and diet_id.",
			Args: []Arg{
				{Name: "device_id", Type: ArgString, Description: "Unique device/user identifier", Required: true},
				{Name: "diet_id", Type: ArgString, Description: "The diet's unique ID", Required: true},
			},
		},
	}
}
