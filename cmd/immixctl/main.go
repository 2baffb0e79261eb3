// Command immixctl exercises the immix allocator from the command line.
package main

func main() {
	execute()
}
