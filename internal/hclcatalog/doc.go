// Package hclcatalog loads node declarations from HCL files into a registry.
//
// A catalogue file holds any number of node blocks:
//
//	node "Flap Lever Set" {
//	  kind         = "key_time_instance"
//	  dependencies = ["Flap Lever", "Flap Lever (Synthetic)"]
//	  can_operate  = any_of(dependencies, available)
//	}
//
// can_operate is optional. When present it is an HCL expression evaluated
// with two variables, available (set of the dependency names that resolved
// operable) and dependencies (the declared list), and the functions
// all_of, any_of, contains and length. It must produce a bool.
package hclcatalog
